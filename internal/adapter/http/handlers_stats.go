package adapthttp

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// statsTarget resolves whose stats to compute: the caller, or for admins an
// explicit user_id query parameter.
func statsTarget(r *http.Request) int64 {
	caller := userFrom(r)
	if caller.IsAdmin {
		if id := int64Query(r, "user_id"); id != nil {
			return *id
		}
	}
	return caller.ID
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, err := s.stats.PersonalRecords(r.Context(), statsTarget(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	unit := r.URL.Query().Get("unit")
	points, err := s.stats.Weekly(r.Context(), statsTarget(r), unit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unitOrDefault(unit), "days": points})
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "kg"
	}
	return unit
}
