package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
	"fittrack/internal/domain"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) handleMeasurementCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	var in app.MeasurementInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	bm, err := s.measurements.Create(r.Context(), caller.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bm)
}

func (s *Server) handleMeasurementList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller := userFrom(r)
	skip, limit := pagination(r)
	items, err := s.measurements.List(r.Context(), domain.MeasurementFilter{
		UserID: ownScope(r, caller),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) measurementForCaller(r *http.Request, ps httprouter.Params) (*domain.BodyMeasurement, error) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		return nil, err
	}
	bm, err := s.measurements.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !canAccess(userFrom(r), bm.UserID) {
		return nil, domain.Forbidden("not authorized")
	}
	return bm, nil
}

func (s *Server) handleMeasurementGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bm, err := s.measurementForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bm)
}

func (s *Server) handleMeasurementUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bm, err := s.measurementForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	var in app.MeasurementUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.measurements.Update(r.Context(), bm.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleMeasurementDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bm, err := s.measurementForCaller(r, ps)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.measurements.Delete(r.Context(), bm.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
