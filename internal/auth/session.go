// Package auth abstracts the out-of-scope authentication subsystem into a
// fail-closed token source.  Consumers (the submission flow, cancellation
// handlers) depend on the TokenSource interface instead of reaching for
// ambient global state, so tests can substitute an in-memory fake.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken means no session is logged in.
	ErrNoToken = errors.New("no session token")
	// ErrExpired means the session token's exp claim has passed.
	ErrExpired = errors.New("session token expired")
)

// TokenSource yields a bearer token for an outgoing backend call, or an
// error when none is valid.  Implementations fail closed: a caller that
// gets an error must not attempt the call unauthenticated.
type TokenSource interface {
	CurrentToken(ctx context.Context) (string, error)
}

// Session holds one user's bearer token and its expiry.  It implements
// TokenSource and fails closed once the token expires.
type Session struct {
	mu    sync.RWMutex
	token string
	exp   time.Time
}

// Login stores the token and its expiry.  A zero expiry means the token
// never expires from this process's point of view.
func (s *Session) Login(token string, exp time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.exp = exp
}

// Logout drops the token.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.exp = time.Time{}
}

// IsExpired reports whether the stored token has passed its expiry.  An
// empty session counts as expired.
func (s *Session) IsExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return true
	}
	return !s.exp.IsZero() && time.Now().After(s.exp)
}

// CurrentToken returns the stored token, or ErrNoToken / ErrExpired.
func (s *Session) CurrentToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	if !s.exp.IsZero() && time.Now().After(s.exp) {
		return "", ErrExpired
	}
	return s.token, nil
}

// SessionFromJWT builds a Session from an already-verified bearer token,
// reading the exp claim without re-verifying the signature (the JWT
// middleware has done that).  Used to carry a request's token into the
// submission flow.
func SessionFromJWT(raw string) *Session {
	s := &Session{}
	var exp time.Time
	parser := jwt.NewParser()
	if tok, _, err := parser.ParseUnverified(raw, jwt.MapClaims{}); err == nil {
		if e, err := tok.Claims.GetExpirationTime(); err == nil && e != nil {
			exp = e.Time
		}
	}
	s.Login(raw, exp)
	return s
}

// StaticTokenSource always returns the same token.  Test helper.
type StaticTokenSource string

// CurrentToken implements TokenSource.
func (t StaticTokenSource) CurrentToken(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}
