package store

import (
	"sync"

	"github.com/ambernotes/revops-etl/internal/models"
)

// MemoryStore holds the latest dashboard document built by the pipeline so
// the HTTP surface can serve it without re-running the aggregation.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *models.Dashboard
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Set(doc *models.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

// Latest returns the last built document, or nil before the first run.
func (s *MemoryStore) Latest() *models.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}
