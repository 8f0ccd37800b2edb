// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"sort"
	"sync"

	"fittrack/internal/domain"
)

// DB is the shared in-memory store backing every repository in this package.
type DB struct {
	mu           sync.Mutex
	users        map[int64]*domain.User
	workoutTypes map[int64]*domain.WorkoutType
	exercises    map[int64]*domain.Exercise
	sessions     map[int64]*domain.WorkoutSession
	logs         map[int64]*domain.ExerciseLog
	measurements map[int64]*domain.BodyMeasurement
	goals        map[int64]*domain.FitnessGoal

	userIDCounter        int64
	workoutTypeIDCounter int64
	exerciseIDCounter    int64
	sessionIDCounter     int64
	logIDCounter         int64
	measurementIDCounter int64
	goalIDCounter        int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		users:        make(map[int64]*domain.User),
		workoutTypes: make(map[int64]*domain.WorkoutType),
		exercises:    make(map[int64]*domain.Exercise),
		sessions:     make(map[int64]*domain.WorkoutSession),
		logs:         make(map[int64]*domain.ExerciseLog),
		measurements: make(map[int64]*domain.BodyMeasurement),
		goals:        make(map[int64]*domain.FitnessGoal),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*UserRepo)(nil)
var _ domain.WorkoutTypeRepository = (*WorkoutTypeRepo)(nil)
var _ domain.ExerciseRepository = (*ExerciseRepo)(nil)
var _ domain.WorkoutSessionRepository = (*WorkoutSessionRepo)(nil)
var _ domain.ExerciseLogRepository = (*ExerciseLogRepo)(nil)
var _ domain.BodyMeasurementRepository = (*BodyMeasurementRepo)(nil)
var _ domain.FitnessGoalRepository = (*FitnessGoalRepo)(nil)
var _ domain.StatsRepository = (*StatsRepo)(nil)

// sortedIDs returns the map's keys in ascending order, for stable listings.
func sortedIDs[T any](m map[int64]*T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// window applies skip/limit pagination to an already-ordered slice.
func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
