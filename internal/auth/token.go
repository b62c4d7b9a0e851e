package auth

import (
	"context"
	"sync"
	"time"
)

// expiryBuffer is subtracted from a token's lifetime so requests never race
// server-side expiry.
const expiryBuffer = 30 * time.Second

// TokenManager provides access tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, obtaining or refreshing one
	// when necessary.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken forces a refresh regardless of the current token state.
	RefreshToken(ctx context.Context) error

	// SetToken replaces the current token.
	SetToken(token string, expiresAt time.Time)
}

// Token is an OAuth2 token response from /oauth/token.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	CreatedAt    int64     `json:"created_at,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token can still be used, honoring the expiry
// buffer.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// tokenStore guards the current token for concurrent use.
type tokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// Get returns the current token, or nil.
func (s *tokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *tokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}
