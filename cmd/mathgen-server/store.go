package main

import (
	"sync"

	"github.com/google/uuid"
	"github.com/njchilds90/gomathgen"
)

// problemStore keeps the most recent problems by id. Once full, the oldest
// entry is evicted.
type problemStore struct {
	mu       sync.RWMutex
	capacity int
	byID     map[uuid.UUID]*mathgen.Problem
	order    []uuid.UUID
}

func newProblemStore(capacity int) *problemStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &problemStore{capacity: capacity, byID: make(map[uuid.UUID]*mathgen.Problem, capacity)}
}

func (s *problemStore) Put(p *mathgen.Problem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; ok {
		s.byID[p.ID] = p
		return
	}
	if len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, oldest)
	}
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
}

func (s *problemStore) Get(id uuid.UUID) (*mathgen.Problem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

func (s *problemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
