// Package auth persists the bearer token the API client sends on
// authenticated calls.
package auth

import (
	"context"
	"errors"
	"sync"
)

// TokenKey is the fixed key the token is stored under in every backend.
const TokenKey = "damage_snap_auth_token"

// ErrNoToken is returned when no token has been stored.
var ErrNoToken = errors.New("authentication token not found")

// Store is the persistent home of the bearer token. The zero state is empty;
// a login sets the token and a logout clears it.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) SetToken(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token is empty")
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ClearToken(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
