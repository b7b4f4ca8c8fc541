package session

import (
	"sync"
	"time"
)

type entry struct {
	state   State
	touched time.Time
}

// Store keeps one State per user in memory. Absent users are Idle.
type Store struct {
	mu      sync.RWMutex
	entries map[int64]entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]entry), now: time.Now}
}

func (s *Store) Get(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[userID]; ok {
		return e.state
	}
	return Idle{}
}

// Set replaces the user's state. Setting Idle drops the entry.
func (s *Store) Set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, idle := st.(Idle); idle || st == nil {
		delete(s.entries, userID)
		return
	}
	s.entries[userID] = entry{state: st, touched: s.now()}
}

// Advance moves the user from `from` to `to` only if the current state is
// still `from`. It reports whether the transition happened.
func (s *Store) Advance(userID int64, from, to State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := State(Idle{})
	if e, ok := s.entries[userID]; ok {
		cur = e.state
	}
	if cur != from {
		return false
	}
	if _, idle := to.(Idle); idle || to == nil {
		delete(s.entries, userID)
		return true
	}
	s.entries[userID] = entry{state: to, touched: s.now()}
	return true
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

// ExpireIdle drops sessions untouched for longer than maxIdle and returns
// how many were removed.
func (s *Store) ExpireIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, e := range s.entries {
		if e.touched.Before(cutoff) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
