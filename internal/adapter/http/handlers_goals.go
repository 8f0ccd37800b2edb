package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
	"fittrack/internal/domain"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) handleGoalCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	var in app.GoalInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	g, err := s.goals.Create(r.Context(), caller.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleGoalList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	skip, limit := pagination(r)
	items, err := s.goals.List(r.Context(), domain.GoalFilter{
		UserID:   ownScope(r, caller),
		Achieved: boolQuery(r, "achieved"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) goalForCaller(r *http.Request, ps httprouter.Params) (*domain.FitnessGoal, error) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		return nil, err
	}
	g, err := s.goals.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !canAccess(userFrom(r), g.UserID) {
		return nil, domain.Forbidden("not authorized")
	}
	return g, nil
}

func (s *Server) handleGoalGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	g, err := s.goalForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGoalUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	g, err := s.goalForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	var in app.GoalUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.goals.Update(r.Context(), g.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleGoalDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	g, err := s.goalForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.goals.Delete(r.Context(), g.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
