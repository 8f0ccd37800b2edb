package app

import (
	"context"
	"errors"
	"testing"

	"fittrack/internal/domain"
	"fittrack/internal/token"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	insertFn         func(ctx context.Context, u *domain.User) (*domain.User, error)
	findByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	listFn           func(ctx context.Context, skip, limit int) ([]domain.User, error)
	updateFn         func(ctx context.Context, u *domain.User) error
	deleteFn         func(ctx context.Context, id int64) (bool, error)
}

func (m *mockUserRepo) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, u)
	}
	u.ID = 1
	return u, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, skip, limit)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

func testIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	iss, err := token.New("test-secret-key", "HS256", 0)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return iss
}

func aliceRepo(t *testing.T) *mockUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("alicepassword"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	alice := &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash), IsActive: true}
	return &mockUserRepo{
		findByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			if username == "alice" {
				u := *alice
				return &u, nil
			}
			return nil, nil
		},
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(aliceRepo(t), testIssuer(t))

	user, err := svc.Authenticate(context.Background(), "alice", "alicepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthenticate_SameErrorForBothFailures(t *testing.T) {
	svc := NewAuthService(aliceRepo(t), testIssuer(t))

	_, errWrongPassword := svc.Authenticate(context.Background(), "alice", "not the password")
	_, errUnknownUser := svc.Authenticate(context.Background(), "nobody", "whatever")

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", errUnknownUser)
	}
	// A caller must not be able to tell the two apart.
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatal("failure messages differ between unknown user and wrong password")
	}
}

func TestAuthenticate_CaseSensitiveUsername(t *testing.T) {
	svc := NewAuthService(aliceRepo(t), testIssuer(t))
	if _, err := svc.Authenticate(context.Background(), "Alice", "alicepassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected credentials error for cased username, got %v", err)
	}
}

func TestLoginAndResolveToken(t *testing.T) {
	svc := NewAuthService(aliceRepo(t), testIssuer(t))

	tok, err := svc.Login(context.Background(), "alice", "alicepassword")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	user, err := svc.ResolveToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected subject: %+v", user)
	}
}

func TestResolveToken_Invalid(t *testing.T) {
	svc := NewAuthService(aliceRepo(t), testIssuer(t))

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ResolveToken(context.Background(), raw); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("token %q: expected unauthorized, got %v", raw, err)
		}
	}
}

func TestResolveToken_DeletedSubject(t *testing.T) {
	iss := testIssuer(t)
	svc := NewAuthService(&mockUserRepo{}, iss)

	tok, err := iss.IssueDefault("ghost")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.ResolveToken(context.Background(), tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for deleted subject, got %v", err)
	}
}

func TestLoginSSO_Provisions(t *testing.T) {
	var inserted *domain.User
	repo := &mockUserRepo{
		insertFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			u.ID = 7
			inserted = u
			return u, nil
		},
	}
	svc := NewAuthService(repo, testIssuer(t))

	tok, err := svc.LoginSSO(context.Background(), "bob", "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok == "" {
		t.Fatal("expected a token")
	}
	if inserted == nil || inserted.Username != "bob" || inserted.Email != "bob@example.com" {
		t.Fatalf("unexpected provisioned user: %+v", inserted)
	}
	if !inserted.IsActive || inserted.IsAdmin {
		t.Fatalf("provisioned user has wrong flags: %+v", inserted)
	}
	if inserted.PasswordHash == "" {
		t.Fatal("provisioned user must carry a password hash")
	}
}
