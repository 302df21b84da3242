package application

import (
	"sync"
	"time"

	"layerfill/internal/domain"
)

// Session owns state that outlives a single command: the result of the most
// recent import. Each import overwrites the slot; readers get a snapshot.
type Session struct {
	mu         sync.RWMutex
	lastResult *domain.ImportResult
	importedAt time.Time
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// SetLastResult replaces the stored import result
func (s *Session) SetLastResult(result *domain.ImportResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = result
	s.importedAt = time.Now()
}

// LastResult returns the most recent import result and when it completed.
// ok is false if no import has run in this session.
func (s *Session) LastResult() (result *domain.ImportResult, at time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult, s.importedAt, s.lastResult != nil
}

// HasImported reports whether an import has completed in this session
func (s *Session) HasImported() bool {
	_, _, ok := s.LastResult()
	return ok
}
