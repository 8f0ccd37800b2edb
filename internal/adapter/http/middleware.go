package adapthttp

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fittrack/internal/domain"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

type contextKey string

const userContextKey contextKey = "user"

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// userFrom returns the authenticated user placed in the context by the
// capability middleware. Panics if called outside a guarded route.
func userFrom(r *http.Request) *domain.User {
	return r.Context().Value(userContextKey).(*domain.User)
}

// identify extracts and verifies the bearer token and resolves the acting
// user. The cause of a failure is logged at debug level only; the caller
// sees a uniform 401.
func (s *Server) identify(r *http.Request) (*domain.User, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.auth.ResolveToken(r.Context(), raw)
	if err != nil {
		s.log.Debug().Err(err).Str("path", r.URL.Path).Msg("token rejected")
		return nil, err
	}
	return user, nil
}

// withActive guards a route for any authenticated user whose account is active.
func (s *Server) withActive(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user, err := s.identify(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if !user.IsActive {
			writeError(w, domain.Forbidden("inactive user"))
			return
		}
		next(w, r.WithContext(withUser(r.Context(), user)), ps)
	}
}

// withAdmin guards a route for admin identities only.
func (s *Server) withAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user, err := s.identify(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if !user.IsAdmin {
			writeError(w, domain.Forbidden("not authorized"))
			return
		}
		next(w, r.WithContext(withUser(r.Context(), user)), ps)
	}
}

// canAccess implements the self-or-admin rule for a resource owned by ownerID.
func canAccess(caller *domain.User, ownerID int64) bool {
	return caller.IsAdmin || caller.ID == ownerID
}

// ownScope narrows list filters to the caller unless the caller is admin.
// Admins may scope to any user via the user_id query parameter.
func ownScope(r *http.Request, caller *domain.User) *int64 {
	if caller.IsAdmin {
		return int64Query(r, "user_id")
	}
	id := caller.ID
	return &id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// requestLogger emits one structured log line per request.
func requestLogger(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
