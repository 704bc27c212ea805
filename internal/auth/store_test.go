package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func writeTokenFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestToken_EnvWinsOverFile(t *testing.T) {
	path := writeTokenFile(t, "file-token")
	t.Setenv(EnvToken, "env-token")

	s := NewStore(path)
	assert.Equal(t, "env-token", s.Token())
}

func TestToken_FileFallback(t *testing.T) {
	t.Setenv(EnvToken, "")
	path := writeTokenFile(t, "  file-token\n")

	s := NewStore(path)
	assert.Equal(t, "file-token", s.Token(), "file contents are trimmed")
}

func TestToken_MissingIsEmpty(t *testing.T) {
	t.Setenv(EnvToken, "")

	assert.Empty(t, NewStore("").Token())
	assert.Empty(t, NewStore(filepath.Join(t.TempDir(), "nope")).Token())
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	t.Setenv(EnvToken, signedToken(t, exp))

	s := NewStore("")
	got, ok := s.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestExpiresAt_NotAJWT(t *testing.T) {
	t.Setenv(EnvToken, "opaque-api-key")

	_, ok := NewStore("").ExpiresAt()
	assert.False(t, ok)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	t.Setenv(EnvToken, signedToken(t, now.Add(-time.Minute)))
	assert.True(t, NewStore("").Expired(now))

	t.Setenv(EnvToken, signedToken(t, now.Add(time.Minute)))
	assert.False(t, NewStore("").Expired(now))

	// No expiry claim at all: never reported expired.
	t.Setenv(EnvToken, "opaque-api-key")
	assert.False(t, NewStore("").Expired(now))
}
