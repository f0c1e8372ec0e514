// Package auth keeps the bearer token the service issues at login. The
// token lives in a file under the user's home directory, the terminal
// equivalent of the web client's localStorage entry.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewTokenStore loads any previously saved token from path. A missing file
// just means logged out.
func NewTokenStore(path string) (*TokenStore, error) {
	s := &TokenStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	s.token = token
	return nil
}

// Clear forgets the credential, both in memory and on disk. Called on
// explicit logout and whenever the service answers 401.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// LoggedIn reports whether a usable token is present. The expiry claim is
// read without verifying the signature: the client never holds the signing
// key, and the service is the authority either way.
func (s *TokenStore) LoggedIn() bool {
	tok := s.Token()
	if tok == "" {
		return false
	}
	return !tokenExpired(tok)
}

func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false // no exp claim, let the service decide
	}
	return exp.Before(time.Now())
}
