package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used by tests and the memory
// driver. Documents are kept as raw JSON so Get/Put/Query behave the
// same as the Postgres backend.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage

	// FailNext makes every operation return an error once set. Lets
	// tests exercise the store-unavailable paths.
	FailNext error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	collections := make(map[string]map[string]json.RawMessage, len(Collections))
	for _, c := range Collections {
		collections[c] = make(map[string]json.RawMessage)
	}
	return &MemoryStore{collections: collections}
}

func (s *MemoryStore) collection(name string) map[string]json.RawMessage {
	if _, ok := s.collections[name]; !ok {
		s.collections[name] = make(map[string]json.RawMessage)
	}
	return s.collections[name]
}

// Get reads a single document by id.
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailNext != nil {
		return Document{}, s.FailNext
	}

	data, ok := s.collection(collection)[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: data}, nil
}

// Put upserts a document keyed by its id.
func (s *MemoryStore) Put(ctx context.Context, collection string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNext != nil {
		return s.FailNext
	}

	stored := make(json.RawMessage, len(doc.Data))
	copy(stored, doc.Data)
	s.collection(collection)[doc.ID] = stored
	return nil
}

// Query scans a collection for documents matching the equality filter.
// Iteration order is not guaranteed, same as a partitioned scan.
func (s *MemoryStore) Query(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailNext != nil {
		return nil, s.FailNext
	}

	// Round-trip the filter through JSON so its values compare against
	// decoded document fields with matching types.
	normalized, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	docs := []Document{}
	for id, data := range s.collection(collection) {
		var fields map[string]interface{}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("corrupt document %s: %w", id, err)
		}
		if matches(fields, normalized) {
			docs = append(docs, Document{ID: id, Data: data})
		}
	}
	return docs, nil
}

func normalizeFilter(filter Filter) (map[string]interface{}, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query filter: %w", err)
	}
	normalized := map[string]interface{}{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("failed to normalize query filter: %w", err)
	}
	return normalized, nil
}

func matches(fields, filter map[string]interface{}) bool {
	for key, want := range filter {
		got, ok := fields[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}
