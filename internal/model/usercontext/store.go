// Package usercontext stores per-user coaching context supplied through the
// HTTP surface (uploaded files or pasted text). The store is an injected
// dependency of the handlers, never a process-wide singleton.
package usercontext

import (
	"sync"
	"time"
)

// Context is the most recent context a user has provided.
type Context struct {
	Filename  string    `json:"filename,omitempty"`
	Text      string    `json:"text,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store keeps per-user context in memory, safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items map[string]Context
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{items: make(map[string]Context)}
}

// SetFile records an uploaded context file for the user.
func (s *Store) SetFile(userID, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = Context{Filename: filename, UpdatedAt: time.Now().UTC()}
}

// SetText records pasted context text for the user.
func (s *Store) SetText(userID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = Context{Text: text, UpdatedAt: time.Now().UTC()}
}

// Get returns the stored context for the user, if any.
func (s *Store) Get(userID string) (Context, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, ok := s.items[userID]
	return ctx, ok
}
