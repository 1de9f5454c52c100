package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/w-h-a/doculyzer/docstore"
)

type document struct {
	content  []byte
	metadata map[string]string
}

// Store is an in-memory document store. Unlike the other providers it is
// exported concretely so callers can seed documents through Put.
type Store struct {
	options   docstore.Options
	documents map[string]*document
	mtx       sync.RWMutex
}

func (s *Store) GetStream(ctx context.Context, name string) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	doc, ok := s.documents[name]
	if !ok {
		return nil, fmt.Errorf("document %s not found", name)
	}

	cpy := make([]byte, len(doc.content))
	copy(cpy, doc.content)

	return cpy, nil
}

func (s *Store) SetMetadata(ctx context.Context, name string, metadata map[string]string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	doc, ok := s.documents[name]
	if !ok {
		return fmt.Errorf("document %s not found", name)
	}

	maps.Copy(doc.metadata, metadata)

	return nil
}

func (s *Store) Status(ctx context.Context, name string) (string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	doc, ok := s.documents[name]
	if !ok {
		return "", nil
	}

	return doc.metadata["Status"], nil
}

// Put seeds a document. It is the memory stand-in for an upload to the
// backing blob store.
func (s *Store) Put(name string, content []byte) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.documents[name] = &document{
		content:  content,
		metadata: map[string]string{},
	}
}

// Metadata returns a copy of a document's metadata.
func (s *Store) Metadata(name string) map[string]string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	doc, ok := s.documents[name]
	if !ok {
		return nil
	}

	return maps.Clone(doc.metadata)
}

func NewStore(opts ...docstore.Option) *Store {
	options := docstore.NewOptions(opts...)

	return &Store{
		options:   options,
		documents: map[string]*document{},
	}
}
