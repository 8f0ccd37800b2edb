package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
	"fittrack/internal/domain"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	var in app.SessionInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	ws, err := s.workouts.CreateSession(r.Context(), caller.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

func (s *Server) handleSessionList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	skip, limit := pagination(r)
	items, err := s.workouts.ListSessions(r.Context(), domain.SessionFilter{
		UserID:    ownScope(r, caller),
		Completed: boolQuery(r, "completed"),
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// sessionForCaller loads a session and enforces the self-or-admin rule.
func (s *Server) sessionForCaller(r *http.Request, ps httprouter.Params) (*domain.WorkoutSession, error) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		return nil, err
	}
	ws, err := s.workouts.GetSession(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !canAccess(userFrom(r), ws.UserID) {
		return nil, domain.Forbidden("not authorized")
	}
	return ws, nil
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ws, err := s.sessionForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleSessionUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ws, err := s.sessionForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	var in app.SessionUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.workouts.UpdateSession(r.Context(), ws.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ws, err := s.sessionForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.workouts.DeleteSession(r.Context(), ws.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	var in app.LogInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	owner, err := s.workouts.SessionOwner(r.Context(), in.SessionID)
	if err != nil {
		if err == domain.ErrNotFound {
			writeError(w, domain.Invalid("session %d does not exist", in.SessionID))
			return
		}
		writeError(w, err)
		return
	}
	if !canAccess(caller, owner) {
		writeError(w, domain.Forbidden("not authorized"))
		return
	}
	el, err := s.workouts.CreateLog(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, el)
}

func (s *Server) handleLogList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	skip, limit := pagination(r)
	f := domain.LogFilter{
		SessionID: int64Query(r, "session_id"),
		OwnerID:   ownScope(r, caller),
		Skip:      skip,
		Limit:     limit,
	}
	items, err := s.workouts.ListLogs(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// logForCaller loads a log and enforces self-or-admin through its session owner.
func (s *Server) logForCaller(r *http.Request, ps httprouter.Params) (*domain.ExerciseLog, error) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		return nil, err
	}
	el, err := s.workouts.GetLog(r.Context(), id)
	if err != nil {
		return nil, err
	}
	owner, err := s.workouts.SessionOwner(r.Context(), el.SessionID)
	if err != nil {
		return nil, err
	}
	if !canAccess(userFrom(r), owner) {
		return nil, domain.Forbidden("not authorized")
	}
	return el, nil
}

func (s *Server) handleLogGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	el, err := s.logForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, el)
}

func (s *Server) handleLogUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	el, err := s.logForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	var in app.LogUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.workouts.UpdateLog(r.Context(), el.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleLogDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	el, err := s.logForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.workouts.DeleteLog(r.Context(), el.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
