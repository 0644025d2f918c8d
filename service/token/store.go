package token

import (
	"context"
	"sync"
	"time"
)

// Token is the cached access token. ExpiresAt is a hard cutoff.
type Token struct {
	Value        string    `json:"value"`
	RefreshValue string    `json:"refresh_value"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the token can still be used at now.
func (t *Token) Valid(now time.Time) bool {
	return t != nil && t.Value != "" && now.Before(t.ExpiresAt)
}

// Store holds at most one token. Load returns nil, nil when empty.
type Store interface {
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token *Token) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token *Token
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, nil
	}
	t := *s.token
	return &t, nil
}

func (s *MemoryStore) Save(_ context.Context, token *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == nil {
		s.token = nil
		return nil
	}
	t := *token
	s.token = &t
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}
