package domain

import (
	"slices"
	"sync"
)

// ProcessedFileSet records the absolute paths rewritten during one session.
// It only grows; a new session starts with a new set.
type ProcessedFileSet struct {
	mu    sync.RWMutex
	paths map[string]struct{}
}

// NewProcessedFileSet returns an empty set.
func NewProcessedFileSet() *ProcessedFileSet {
	return &ProcessedFileSet{paths: make(map[string]struct{})}
}

// Add records path.
func (s *ProcessedFileSet) Add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[path] = struct{}{}
}

// Has reports whether path was rewritten in this session.
func (s *ProcessedFileSet) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of recorded paths.
func (s *ProcessedFileSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paths)
}

// Paths returns the recorded paths in sorted order.
func (s *ProcessedFileSet) Paths() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	s.mu.RUnlock()
	slices.Sort(out)
	return out
}
