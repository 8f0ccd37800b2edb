// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"fittrack/internal/app"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	log          zerolog.Logger
	auth         *app.AuthService
	users        *app.UserService
	catalog      *app.CatalogService
	workouts     *app.WorkoutService
	measurements *app.MeasurementService
	goals        *app.GoalService
	stats        *app.StatsService
	sso          *SSOConfig
}

// New creates a Server wired to the given application services. sso may be
// nil when OIDC login is not configured.
func New(log zerolog.Logger, auth *app.AuthService, users *app.UserService, catalog *app.CatalogService, workouts *app.WorkoutService, measurements *app.MeasurementService, goals *app.GoalService, stats *app.StatsService, sso *SSOConfig) *Server {
	return &Server{
		log:          log,
		auth:         auth,
		users:        users,
		catalog:      catalog,
		workouts:     workouts,
		measurements: measurements,
		goals:        goals,
		stats:        stats,
		sso:          sso,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := httprouter.New()

	r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.POST("/token", s.handleToken)
	r.GET("/auth/sso/login", s.handleSSOLogin)
	r.GET("/auth/sso/callback", s.handleSSOCallback)

	r.POST("/users", s.handleRegister)
	r.GET("/users", s.withAdmin(s.handleUserList))
	// httprouter cannot register /users/me next to /users/:id, so the
	// handlers accept "me" as an id alias.
	r.GET("/users/:id", s.withActive(s.handleUserGet))
	r.PUT("/users/:id", s.withActive(s.handleUserUpdate))
	r.DELETE("/users/:id", s.withActive(s.handleUserDelete))

	r.POST("/workout-types", s.withAdmin(s.handleWorkoutTypeCreate))
	r.GET("/workout-types", s.withActive(s.handleWorkoutTypeList))
	r.GET("/workout-types/:id", s.withActive(s.handleWorkoutTypeGet))
	r.PUT("/workout-types/:id", s.withAdmin(s.handleWorkoutTypeUpdate))
	r.DELETE("/workout-types/:id", s.withAdmin(s.handleWorkoutTypeDelete))

	r.POST("/exercises", s.withAdmin(s.handleExerciseCreate))
	r.GET("/exercises", s.withActive(s.handleExerciseList))
	r.GET("/exercises/:id", s.withActive(s.handleExerciseGet))
	r.PUT("/exercises/:id", s.withAdmin(s.handleExerciseUpdate))
	r.DELETE("/exercises/:id", s.withAdmin(s.handleExerciseDelete))

	r.POST("/workout-sessions", s.withActive(s.handleSessionCreate))
	r.GET("/workout-sessions", s.withActive(s.handleSessionList))
	r.GET("/workout-sessions/:id", s.withActive(s.handleSessionGet))
	r.PUT("/workout-sessions/:id", s.withActive(s.handleSessionUpdate))
	r.DELETE("/workout-sessions/:id", s.withActive(s.handleSessionDelete))

	r.POST("/exercise-logs", s.withActive(s.handleLogCreate))
	r.GET("/exercise-logs", s.withActive(s.handleLogList))
	r.GET("/exercise-logs/:id", s.withActive(s.handleLogGet))
	r.PUT("/exercise-logs/:id", s.withActive(s.handleLogUpdate))
	r.DELETE("/exercise-logs/:id", s.withActive(s.handleLogDelete))

	r.POST("/body-measurements", s.withActive(s.handleMeasurementCreate))
	r.GET("/body-measurements", s.withActive(s.handleMeasurementList))
	r.GET("/body-measurements/:id", s.withActive(s.handleMeasurementGet))
	r.PUT("/body-measurements/:id", s.withActive(s.handleMeasurementUpdate))
	r.DELETE("/body-measurements/:id", s.withActive(s.handleMeasurementDelete))

	r.POST("/fitness-goals", s.withActive(s.handleGoalCreate))
	r.GET("/fitness-goals", s.withActive(s.handleGoalList))
	r.GET("/fitness-goals/:id", s.withActive(s.handleGoalGet))
	r.PUT("/fitness-goals/:id", s.withActive(s.handleGoalUpdate))
	r.DELETE("/fitness-goals/:id", s.withActive(s.handleGoalDelete))

	r.GET("/stats/personal-records", s.withActive(s.handlePersonalRecords))
	r.GET("/stats/weekly", s.withActive(s.handleWeekly))

	return requestLogger(s.log, r)
}
