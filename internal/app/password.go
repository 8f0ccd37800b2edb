package app

import (
	"crypto/rand"
	"encoding/base64"

	"fittrack/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	// bcrypt silently truncates beyond 72 bytes; reject instead.
	maxPasswordLen = 72
)

// HashPassword validates length bounds and produces a salted bcrypt digest.
// The digest embeds algorithm, cost and salt, so old digests keep verifying
// after a cost increase.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) < minPasswordLen {
		return "", domain.Invalid("password must be at least %d characters", minPasswordLen)
	}
	if len(plaintext) > maxPasswordLen {
		return "", domain.Invalid("password must be at most %d bytes", maxPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// The comparison inside bcrypt is constant time.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func randomPassword() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
