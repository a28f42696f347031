package state

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore keeps aircraft state in process memory. It backs unit tests
// and single-node development runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	states map[string]AircraftState
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{states: make(map[string]AircraftState)}
}

func (s *InMemoryStore) Get(_ context.Context, tail string) (AircraftState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.states[tail]; ok {
		return st, nil
	}
	return AircraftState{}, ErrNotFound
}

func (s *InMemoryStore) Put(_ context.Context, st AircraftState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[st.Tail] = st
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, tail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.states[tail]; !ok {
		return ErrNotFound
	}
	delete(s.states, tail)
	return nil
}

func (s *InMemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]AircraftState)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]AircraftState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AircraftState, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tail < out[j].Tail })
	return out, nil
}
