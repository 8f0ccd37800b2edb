// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"

	"fittrack/internal/domain"
	"fittrack/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates that the provided username or password was
// incorrect. Deliberately does not say which.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is compared against when a username does not resolve, so both
// failure branches of Authenticate cost one bcrypt verify.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("fittrack.dummy"), bcrypt.DefaultCost)

// AuthService handles authentication and bearer token issuance.
type AuthService struct {
	users  domain.UserRepository
	tokens *token.Issuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, tokens *token.Issuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Authenticate verifies a username/password pair and returns the user.
// Username lookup is case-sensitive exact match. Unknown users and wrong
// passwords return the same error after comparable work.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and mints a bearer token bound to the username.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueDefault(user.Username)
}

// ResolveToken verifies a bearer token and resolves its subject to a user.
// Invalid tokens and subjects that no longer exist both surface as
// domain.ErrUnauthorized; the wrapped cause is for logging only.
func (s *AuthService) ResolveToken(ctx context.Context, raw string) (*domain.User, error) {
	subject, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	user, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown subject", domain.ErrUnauthorized)
	}
	return user, nil
}

// LoginSSO mints a token for an identity already verified upstream (OIDC).
// Missing users are auto-provisioned with an unusable random password.
func (s *AuthService) LoginSSO(ctx context.Context, username, email string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(randomPassword()), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		user, err = s.users.Insert(ctx, &domain.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			FitnessLevel: domain.Beginner,
			IsActive:     true,
		})
		if err != nil {
			// Lost a provisioning race; the row exists now.
			user, err = s.users.FindByUsername(ctx, username)
			if err != nil || user == nil {
				return "", fmt.Errorf("sso provisioning: %w", err)
			}
		}
	}
	return s.tokens.IssueDefault(user.Username)
}
