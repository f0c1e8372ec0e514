package auth

import (
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
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenStoreSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.Equal(t, "", s.Token())
	assert.False(t, s.LoggedIn())

	tok := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.Save(tok))
	assert.True(t, s.LoggedIn())

	// A fresh store picks the token back up from disk.
	again, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.Equal(t, tok, again.Token())
	assert.True(t, again.LoggedIn())

	require.NoError(t, s.Clear())
	assert.False(t, s.LoggedIn())

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestExpiredTokenCountsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s, err := NewTokenStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, s.LoggedIn())
}

func TestGarbageTokenCountsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s, err := NewTokenStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Save("not-a-jwt"))
	assert.False(t, s.LoggedIn())
}
