// Package docstore provides a keyed, partitioned record store with point
// reads/writes and filtered scans by equality predicate. It is the only
// collaborator the domain core talks to.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names used by the application.
const (
	CollectionUsers       = "users"
	CollectionModules     = "modules"
	CollectionEnrollments = "user_modules"
)

// Collections lists every collection the store must provide.
var Collections = []string{CollectionUsers, CollectionModules, CollectionEnrollments}

// ErrNotFound is returned by Get when no document has the given id.
var ErrNotFound = errors.New("document not found")

// Document is a stored record: an opaque id plus its JSON body.
type Document struct {
	ID   string
	Data json.RawMessage
}

// NewDocument marshals v into a Document keyed by id.
func NewDocument(id string, v interface{}) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("failed to marshal document %s: %w", id, err)
	}
	return Document{ID: id, Data: data}, nil
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v interface{}) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}
	return nil
}

// Filter is an equality predicate over top-level document fields.
// An empty filter matches every document in the collection.
type Filter map[string]interface{}

// Store is the record store contract. Put is an upsert keyed by the
// document id; that per-key write is the store's only atomic unit.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Put(ctx context.Context, collection string, doc Document) error
	Query(ctx context.Context, collection string, filter Filter) ([]Document, error)
}
