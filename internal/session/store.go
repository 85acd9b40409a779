// Package session holds the single signed-in identity for a running client.
// It is deliberately in-memory: nothing survives a restart.
package session

import (
	"strings"
	"sync"

	"github.com/smartpark-app/smartpark-client/pkg/smartpark"
)

// Listener receives the identity after every change. ok is false when the
// session has been cleared.
type Listener func(user smartpark.User, ok bool)

// Store is a single-writer observable holder for at most one identity.
type Store struct {
	mu        sync.RWMutex
	user      smartpark.User
	ok        bool
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Set replaces the current identity. Email is lowercased, matching the
// backend's identity key.
func (s *Store) Set(user smartpark.User) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	s.mu.Lock()
	s.user = user
	s.ok = true
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(user, true)
	}
}

// Current returns the signed-in identity, if any.
func (s *Store) Current() (smartpark.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.ok
}

// Email is a convenience for the identity key most operations need.
func (s *Store) Email() (string, bool) {
	user, ok := s.Current()
	return user.Email, ok
}

// Clear ends the session.
func (s *Store) Clear() {
	s.mu.Lock()
	s.user = smartpark.User{}
	s.ok = false
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(smartpark.User{}, false)
	}
}

// Subscribe registers a listener for identity changes and returns its cancel
// function. Listeners are invoked after the change is committed.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}
