package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
	"fittrack/internal/domain"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) handleWorkoutTypeCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in app.WorkoutTypeInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	wt, err := s.catalog.CreateWorkoutType(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wt)
}

func (s *Server) handleWorkoutTypeList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := pagination(r)
	items, err := s.catalog.ListWorkoutTypes(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleWorkoutTypeGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	wt, err := s.catalog.GetWorkoutType(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wt)
}

func (s *Server) handleWorkoutTypeUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var in app.WorkoutTypeUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	wt, err := s.catalog.UpdateWorkoutType(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wt)
}

func (s *Server) handleWorkoutTypeDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.catalog.DeleteWorkoutType(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExerciseCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in app.ExerciseInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	e, err := s.catalog.CreateExercise(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleExerciseList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := pagination(r)
	f := domain.ExerciseFilter{
		WorkoutTypeID: int64Query(r, "workout_type_id"),
		Skip:          skip,
		Limit:         limit,
	}
	if v := r.URL.Query().Get("difficulty_level"); v != "" {
		d := domain.Difficulty(v)
		f.Difficulty = &d
	}
	if v := r.URL.Query().Get("primary_muscle_group"); v != "" {
		f.PrimaryMuscleGroup = &v
	}
	items, err := s.catalog.ListExercises(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleExerciseGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := s.catalog.GetExercise(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleExerciseUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var in app.ExerciseUpdate
	if err := parseJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	e, err := s.catalog.UpdateExercise(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleExerciseDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseID(ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.catalog.DeleteExercise(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
