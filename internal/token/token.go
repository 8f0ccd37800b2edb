// Package token issues and verifies the signed bearer tokens used for
// authentication. Tokens are stateless: there is no server-side revocation,
// logout is client-side discard.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed input,
// signature mismatch and expiry all collapse to this one error so callers
// cannot distinguish them. The wrapped cause stays available for logging.
var ErrInvalidToken = errors.New("invalid token")

const (
	// DefaultTTL is the issuance expiry used when none is configured.
	DefaultTTL = 30 * time.Minute
	// fallbackTTL applies when a caller issues with a zero ttl.
	fallbackTTL = 15 * time.Minute
)

// Issuer mints and verifies symmetric-signed tokens binding a subject
// identity to an absolute expiry.
type Issuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// New creates an Issuer signing with the given secret and algorithm
// (an HMAC method name such as "HS256"; empty picks HS256). ttl is the
// configured issuance expiry; zero picks DefaultTTL.
func New(secret, alg string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if alg == "" {
		alg = "HS256"
	}
	method := jwt.GetSigningMethod(alg)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: unsupported signing algorithm %q", alg)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue mints a signed token binding subject to an absolute expiry of
// now+ttl. A zero ttl falls back to 15 minutes.
func (i *Issuer) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = fallbackTTL
	}
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
}

// IssueDefault mints a token with the configured issuance expiry.
func (i *Issuer) IssueDefault(subject string) (string, error) {
	return i.Issue(subject, i.ttl)
}

// Verify checks signature and expiry and returns the token's subject.
// Any failure returns an error wrapping ErrInvalidToken.
func (i *Issuer) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
