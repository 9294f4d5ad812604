package config

import "sync/atomic"

// Store holds the active configuration. Readers always see a complete
// configuration; Swap replaces it in one step.
type Store struct {
	cur atomic.Pointer[Configuration]
}

// NewStore returns a store holding c.
func NewStore(c Configuration) *Store {
	s := &Store{}
	s.cur.Store(&c)
	return s
}

// Load returns the active configuration.
func (s *Store) Load() Configuration {
	if c := s.cur.Load(); c != nil {
		return *c
	}
	return Default()
}

// Swap installs c and returns the configuration it replaced.
func (s *Store) Swap(c Configuration) Configuration {
	if prev := s.cur.Swap(&c); prev != nil {
		return *prev
	}
	return Default()
}
