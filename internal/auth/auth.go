// Package auth decides who may use the admin panel.
package auth

import (
	"sort"
	"sync"
)

type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Note     string `json:"note,omitempty"`
}

// Repository supplies a persisted admin roster.
type Repository interface {
	LoadAll() ([]Admin, error)
}

type Service struct {
	mu     sync.RWMutex
	admins map[int64]Admin
}

// NewWithRepo merges the admins in repo (may be nil) with the ids from the
// environment. A repo that fails to load is reported but the env ids still apply.
func NewWithRepo(repo Repository, initial []int64) (*Service, error) {
	s := &Service{admins: make(map[int64]Admin)}
	var loadErr error
	if repo != nil {
		admins, err := repo.LoadAll()
		if err != nil {
			loadErr = err
		}
		for _, a := range admins {
			if a.ID != 0 {
				s.admins[a.ID] = a
			}
		}
	}
	for _, id := range initial {
		if _, ok := s.admins[id]; !ok && id != 0 {
			s.admins[id] = Admin{ID: id}
		}
	}
	return s, loadErr
}

// New is NewWithRepo without a file roster.
func New(ids []int64) *Service {
	s, _ := NewWithRepo(nil, ids)
	return s
}

func (s *Service) IsAdmin(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[userID]
	return ok
}

// List returns admins ordered by id.
func (s *Service) List() []Admin {
	s.mu.RLock()
	out := make([]Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, a)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the admin ids in ascending order.
func (s *Service) IDs() []int64 {
	list := s.List()
	ids := make([]int64, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	return ids
}
