package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/w-h-a/doculyzer/evalstore"
)

// Store keeps evaluation records in process. Exported concretely so tests
// and local runs can inspect what was persisted.
type Store struct {
	options evalstore.Options
	records map[string]evalstore.Record
	mtx     sync.RWMutex
}

func (s *Store) Create(ctx context.Context, record evalstore.Record) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.records[record.Id]; exists {
		return fmt.Errorf("evaluation record %s already exists", record.Id)
	}

	s.records[record.Id] = record

	return nil
}

func (s *Store) PatchFeedback(ctx context.Context, id string, satisfied bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	record, ok := s.records[id]
	if !ok {
		return evalstore.ErrNotFound
	}

	record.UserFeedback = &satisfied
	s.records[id] = record

	return nil
}

// Get returns a stored record and whether it exists.
func (s *Store) Get(id string) (evalstore.Record, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	record, ok := s.records[id]
	return record, ok
}

// Len reports how many records have been persisted.
func (s *Store) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return len(s.records)
}

func NewStore(opts ...evalstore.Option) *Store {
	options := evalstore.NewOptions(opts...)

	return &Store{
		options: options,
		records: map[string]evalstore.Record{},
	}
}
