// Package memory provides in-process adapters, primarily for tests,
// examples and single-binary hosts.
package memory

import (
	"context"
	"sync"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Journal implements ports.Journal in memory.
// Safe for concurrent use.
type Journal struct {
	mu   sync.RWMutex
	recs []domain.TransitionRecord
}

// NewJournal creates an empty in-memory journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Append records one transition at the tail.
func (j *Journal) Append(_ context.Context, rec domain.TransitionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recs = append(j.recs, rec)
	return nil
}

// Tail returns the most recent n records in append order; n <= 0 returns the
// whole log. The result is a copy, so callers cannot mutate the journal.
func (j *Journal) Tail(_ context.Context, n int) ([]domain.TransitionRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n <= 0 || n > len(j.recs) {
		n = len(j.recs)
	}
	out := make([]domain.TransitionRecord, n)
	copy(out, j.recs[len(j.recs)-n:])
	return out, nil
}

// Len reports the number of records held.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.recs)
}

// Reset discards every record.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recs = nil
}
