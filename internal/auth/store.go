// Package auth resolves the bearer credential attached to generation
// requests from client-side storage.
package auth

import (
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvToken is the environment variable checked before the token file.
const EnvToken = "ACTA_TOKEN"

// Store resolves the bearer token from the environment or from a token file.
// A missing credential is not an error at this layer: requests simply go out
// anonymous and the server decides whether to reject them.
type Store struct {
	path string
}

// NewStore creates a Store that falls back to reading path when EnvToken is
// unset. An empty path disables the file fallback.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the current credential, or "" when none is available.
func (s *Store) Token() string {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token
	}
	if s.path == "" {
		return ""
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ExpiresAt inspects the token's JWT claims without verifying the signature
// and returns the expiry time. ok is false when there is no token, the token
// is not a JWT, or it carries no expiry. Verification belongs to the server;
// the client only uses this to warn before sending a credential that is
// already dead.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the stored token carries an expiry in the past.
func (s *Store) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && exp.Before(now)
}
