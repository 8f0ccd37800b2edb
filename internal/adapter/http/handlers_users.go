package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
	"fittrack/internal/domain"

	"github.com/julienschmidt/httprouter"
)

// handleRegister creates an account. This is the only unauthenticated write.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in app.RegisterInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	u, err := s.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// targetUserID resolves the :id path segment, treating "me" as the caller.
func targetUserID(ps httprouter.Params, caller *domain.User) (int64, error) {
	raw := ps.ByName("id")
	if raw == "me" {
		return caller.ID, nil
	}
	return parseID(raw)
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller := userFrom(r)
	id, err := targetUserID(ps, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	if !canAccess(caller, id) {
		writeError(w, domain.Forbidden("not authorized"))
		return
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := pagination(r)
	items, err := s.users.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller := userFrom(r)
	id, err := targetUserID(ps, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	if !canAccess(caller, id) {
		writeError(w, domain.Forbidden("not authorized"))
		return
	}
	var in app.UserUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	// Only admins may flip account flags.
	if !caller.IsAdmin {
		in.IsActive = nil
		in.IsAdmin = nil
	}
	u, err := s.users.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller := userFrom(r)
	id, err := targetUserID(ps, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	if !canAccess(caller, id) {
		writeError(w, domain.Forbidden("not authorized"))
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
