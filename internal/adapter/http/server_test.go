package adapthttp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	adapthttp "fittrack/internal/adapter/http"
	"fittrack/internal/adapter/memory"
	"fittrack/internal/app"
	"fittrack/internal/domain"
	"fittrack/internal/token"

	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler http.Handler
	users   *memory.UserRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memory.New()
	users := memory.NewUserRepo(db)
	exercises := memory.NewExerciseRepo(db)
	logs := memory.NewExerciseLogRepo(db)

	issuer, err := token.New("test-secret-key", "HS256", 0)
	require.NoError(t, err)

	srv := adapthttp.New(
		zerolog.Nop(),
		app.NewAuthService(users, issuer),
		app.NewUserService(users),
		app.NewCatalogService(memory.NewWorkoutTypeRepo(db), exercises, logs),
		app.NewWorkoutService(memory.NewWorkoutSessionRepo(db), logs, exercises),
		app.NewMeasurementService(memory.NewBodyMeasurementRepo(db)),
		app.NewGoalService(memory.NewFitnessGoalRepo(db)),
		app.NewStatsService(memory.NewStatsRepo(db)),
		nil,
	)
	return &fixture{handler: srv.Handler(), users: users}
}

// register creates an account through the public endpoint.
func (f *fixture) register(t *testing.T, username string) {
	t.Helper()
	apitest.Handler(f.handler).
		Post("/users").
		JSON(fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"supersecret"}`, username, username)).
		Expect(t).
		Status(http.StatusCreated).
		End()
}

// seedAdmin inserts an admin account directly into the store; there is no
// public endpoint that can create one.
func (f *fixture) seedAdmin(t *testing.T) {
	t.Helper()
	hash, err := app.HashPassword("adminpassword")
	require.NoError(t, err)
	_, err = f.users.Insert(context.Background(), &domain.User{
		Username:     "root",
		Email:        "root@example.com",
		PasswordHash: hash,
		FitnessLevel: domain.Expert,
		IsActive:     true,
		IsAdmin:      true,
	})
	require.NoError(t, err)
}

// login exchanges credentials for a bearer token via the form endpoint.
func (f *fixture) login(t *testing.T, username, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.TokenType)
	return body.AccessToken
}

func bearer(tok string) string { return "Bearer " + tok }

func TestHealth(t *testing.T) {
	f := newFixture(t)
	apitest.Handler(f.handler).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.ok", true)).
		End()
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	tok := f.login(t, "alice", "supersecret")
	require.Len(t, strings.Split(tok, "."), 3)

	apitest.Handler(f.handler).
		Post("/token").
		FormData("username", "alice").
		FormData("password", "wrong password").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	// Unknown users produce the exact same response as wrong passwords.
	apitest.Handler(f.handler).
		Post("/token").
		FormData("username", "nobody").
		FormData("password", "whatever").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "invalid username or password")).
		End()
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	tok := f.login(t, "alice", "supersecret")

	apitest.Handler(f.handler).
		Get("/users/me").
		Header("Authorization", bearer(tok)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.username", "alice")).
		Assert(jsonpath.NotPresent("$.passwordHash")).
		End()
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	apitest.Handler(f.handler).
		Get("/users/me").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "could not validate credentials")).
		End()

	apitest.Handler(f.handler).
		Get("/users/me").
		Header("Authorization", "Bearer not.a.token").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "could not validate credentials")).
		End()
}

func TestUserAccess(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t)
	f.register(t, "alice")
	f.register(t, "bob")
	admin := f.login(t, "root", "adminpassword")
	bob := f.login(t, "bob", "supersecret")

	var alice domain.User
	found, err := f.users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	alice = *found

	// Bob cannot read Alice's profile; the admin can.
	apitest.Handler(f.handler).
		Get(fmt.Sprintf("/users/%d", alice.ID)).
		Header("Authorization", bearer(bob)).
		Expect(t).
		Status(http.StatusForbidden).
		End()
	apitest.Handler(f.handler).
		Get(fmt.Sprintf("/users/%d", alice.ID)).
		Header("Authorization", bearer(admin)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.username", "alice")).
		End()

	// Listing users is admin-only.
	apitest.Handler(f.handler).
		Get("/users").
		Header("Authorization", bearer(bob)).
		Expect(t).
		Status(http.StatusForbidden).
		End()
	apitest.Handler(f.handler).
		Get("/users").
		Header("Authorization", bearer(admin)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 3)).
		End()
}

func TestUserUpdate_FlagsStrippedForNonAdmins(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	tok := f.login(t, "alice", "supersecret")

	apitest.Handler(f.handler).
		Put("/users/me").
		Header("Authorization", bearer(tok)).
		JSON(`{"bio":"lifting","isAdmin":true,"isActive":false}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.bio", "lifting")).
		Assert(jsonpath.Equal("$.isAdmin", false)).
		Assert(jsonpath.Equal("$.isActive", true)).
		End()
}

func TestInactiveUser(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t)
	f.register(t, "alice")
	tok := f.login(t, "alice", "supersecret")
	admin := f.login(t, "root", "adminpassword")

	found, err := f.users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)

	apitest.Handler(f.handler).
		Put(fmt.Sprintf("/users/%d", found.ID)).
		Header("Authorization", bearer(admin)).
		JSON(`{"isActive":false}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.isActive", false)).
		End()

	// The token still verifies but the account no longer passes the gate.
	apitest.Handler(f.handler).
		Get("/workout-sessions").
		Header("Authorization", bearer(tok)).
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

func TestCatalogWritesAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t)
	f.register(t, "alice")
	alice := f.login(t, "alice", "supersecret")
	admin := f.login(t, "root", "adminpassword")

	apitest.Handler(f.handler).
		Post("/workout-types").
		Header("Authorization", bearer(alice)).
		JSON(`{"name":"Strength","difficulty":"intermediate"}`).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.Handler(f.handler).
		Post("/workout-types").
		Header("Authorization", bearer(admin)).
		JSON(`{"name":"Strength","difficulty":"intermediate"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.name", "Strength")).
		End()

	// Reading the catalog only needs an active account.
	apitest.Handler(f.handler).
		Get("/workout-types").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		End()
}

func TestExerciseFilters(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t)
	f.register(t, "alice")
	admin := f.login(t, "root", "adminpassword")
	alice := f.login(t, "alice", "supersecret")

	for _, body := range []string{
		`{"name":"Bench Press","difficulty":"intermediate","primaryMuscleGroup":"chest"}`,
		`{"name":"Squat","difficulty":"advanced","primaryMuscleGroup":"legs"}`,
		`{"name":"Deadlift","difficulty":"advanced","primaryMuscleGroup":"back"}`,
	} {
		apitest.Handler(f.handler).
			Post("/exercises").
			Header("Authorization", bearer(admin)).
			JSON(body).
			Expect(t).
			Status(http.StatusCreated).
			End()
	}

	apitest.Handler(f.handler).
		Get("/exercises").
		Query("difficulty_level", "advanced").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 2)).
		End()

	apitest.Handler(f.handler).
		Get("/exercises").
		Query("limit", "1").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		End()
}

func TestSessionOwnership(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	f.register(t, "bob")
	alice := f.login(t, "alice", "supersecret")
	bob := f.login(t, "bob", "supersecret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/workout-sessions",
		strings.NewReader(`{"perceivedExertion":7,"mood":"good"}`))
	req.Header.Set("Authorization", bearer(alice))
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var ws domain.WorkoutSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))

	apitest.Handler(f.handler).
		Get(fmt.Sprintf("/workout-sessions/%d", ws.ID)).
		Header("Authorization", bearer(bob)).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	// Bob's own listing does not leak Alice's session.
	apitest.Handler(f.handler).
		Get("/workout-sessions").
		Header("Authorization", bearer(bob)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 0)).
		End()

	apitest.Handler(f.handler).
		Get("/workout-sessions/999").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.Handler(f.handler).
		Delete(fmt.Sprintf("/workout-sessions/%d", ws.ID)).
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	apitest.Handler(f.handler).
		Get(fmt.Sprintf("/workout-sessions/%d", ws.ID)).
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestLogCreate_OthersSessionForbidden(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t)
	f.register(t, "alice")
	f.register(t, "bob")
	admin := f.login(t, "root", "adminpassword")
	alice := f.login(t, "alice", "supersecret")
	bob := f.login(t, "bob", "supersecret")

	apitest.Handler(f.handler).
		Post("/exercises").
		Header("Authorization", bearer(admin)).
		JSON(`{"name":"Squat","difficulty":"advanced"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/workout-sessions",
		strings.NewReader(`{"perceivedExertion":6}`))
	req.Header.Set("Authorization", bearer(alice))
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var ws domain.WorkoutSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))

	body := fmt.Sprintf(`{"sessionId":%d,"exerciseId":1,"sets":3,"reps":5,"weightKg":100,"formRating":4,"difficulty":"advanced"}`, ws.ID)

	apitest.Handler(f.handler).
		Post("/exercise-logs").
		Header("Authorization", bearer(bob)).
		JSON(body).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.Handler(f.handler).
		Post("/exercise-logs").
		Header("Authorization", bearer(alice)).
		JSON(body).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.sessionId", float64(ws.ID))).
		End()

	// A log against a nonexistent session reads as a validation problem, not
	// an authorization one.
	apitest.Handler(f.handler).
		Post("/exercise-logs").
		Header("Authorization", bearer(alice)).
		JSON(`{"sessionId":999,"exerciseId":1,"sets":1,"reps":1,"formRating":3,"difficulty":"advanced"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t)
	f.register(t, "alice")
	admin := f.login(t, "root", "adminpassword")
	alice := f.login(t, "alice", "supersecret")

	apitest.Handler(f.handler).
		Post("/exercises").
		Header("Authorization", bearer(admin)).
		JSON(`{"name":"Squat","difficulty":"advanced"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/workout-sessions",
		strings.NewReader(`{"perceivedExertion":6,"caloriesBurned":300}`))
	req.Header.Set("Authorization", bearer(alice))
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var ws domain.WorkoutSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))

	apitest.Handler(f.handler).
		Post("/exercise-logs").
		Header("Authorization", bearer(alice)).
		JSON(fmt.Sprintf(`{"sessionId":%d,"exerciseId":1,"sets":5,"reps":5,"weightKg":120,"formRating":4,"difficulty":"advanced"}`, ws.ID)).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.Handler(f.handler).
		Get("/stats/personal-records").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$", 1)).
		Assert(jsonpath.Equal("$[0].exerciseName", "Squat")).
		Assert(jsonpath.Equal("$[0].maxWeightKg", 120.0)).
		End()

	apitest.Handler(f.handler).
		Get("/stats/weekly").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.unit", "kg")).
		Assert(jsonpath.Len("$.days", 7)).
		End()

	apitest.Handler(f.handler).
		Get("/stats/weekly").
		Query("unit", "furlongs").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestPersonalRecords_EmptyIsArray(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	alice := f.login(t, "alice", "supersecret")

	// A user with no logs gets an empty JSON array, not null.
	apitest.Handler(f.handler).
		Get("/stats/personal-records").
		Header("Authorization", bearer(alice)).
		Expect(t).
		Status(http.StatusOK).
		Body(`[]`).
		End()
}

func TestUnknownJSONFieldRejected(t *testing.T) {
	f := newFixture(t)
	apitest.Handler(f.handler).
		Post("/users").
		JSON(`{"username":"alice","email":"alice@example.com","password":"supersecret","role":"admin"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}
