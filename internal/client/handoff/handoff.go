// Package handoff carries generated markup from the screen that produced it
// to the preview, outside the navigation channel.
//
// A Store has one slot per origin. Writes overwrite unconditionally; Read is
// idempotent so the preview can re-render without re-fetching. Two writers
// racing each other leave the last write in place.
package handoff

import (
	"sync"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
)

type Store struct {
	mu    sync.RWMutex
	slots map[models.Origin]string
	// writes counts Write calls per origin so a reader can detect that the
	// slot changed since it last looked.
	writes map[models.Origin]uint64
}

func New() *Store {
	return &Store{
		slots:  make(map[models.Origin]string, 2),
		writes: make(map[models.Origin]uint64, 2),
	}
}

func (s *Store) Write(origin models.Origin, markup string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[origin] = markup
	s.writes[origin]++
}

// Read returns the slot content without clearing it.
func (s *Store) Read(origin models.Origin) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	markup, ok := s.slots[origin]
	return markup, ok
}

// Take returns the slot content and clears it.
func (s *Store) Take(origin models.Origin) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	markup, ok := s.slots[origin]
	delete(s.slots, origin)
	return markup, ok
}

// Version is the number of writes the slot has seen.
func (s *Store) Version(origin models.Origin) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes[origin]
}

// Clear empties both slots, e.g. on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.slots)
}
