package verify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("job not found")

	// ErrDuplicateID means two submissions produced the same tracking
	// id. With random 128-bit ids this is a programming error, not a
	// routine failure.
	ErrDuplicateID = errors.New("duplicate job id")
)

// Store maps tracking ids to status records. The pipeline that created a
// record is its only writer until the record turns terminal; readers may
// run concurrently and must never observe a partially written record.
type Store interface {
	Create(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Record, error)
	SetTerminal(ctx context.Context, id string, outcome Record) error
}

// MemoryStore is the default Store: a mutex-guarded map holding records
// for the process lifetime. Nothing is ever evicted.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Create(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	s.records[id] = Record{
		Status:    StatusProcessing,
		Timestamp: time.Now().Unix(),
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// SetTerminal installs a completed or failed outcome. The creation
// timestamp is preserved, and a record that is already terminal is never
// overwritten.
func (s *MemoryStore) SetTerminal(ctx context.Context, id string, outcome Record) error {
	if outcome.Status != StatusCompleted && outcome.Status != StatusFailed {
		return fmt.Errorf("non-terminal outcome %q for job %s", outcome.Status, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if cur.Status != StatusProcessing {
		return fmt.Errorf("job %s is already %s", id, cur.Status)
	}
	outcome.Timestamp = cur.Timestamp
	s.records[id] = outcome
	return nil
}
