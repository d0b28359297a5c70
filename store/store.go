// Package store defines the document-store port the trigger services
// write through. Collections are addressed by slash paths the way the
// upstream app lays documents out ("posts", "posts/p1/post-likes",
// "notifications/u1/user-notifications").
package store

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound - the referenced document does not exist
var ErrNotFound = errors.New("store: document not found")

// Op - comparison operator for queries
type Op string

const (
	OpEqual Op = "=="
	OpLess  Op = "<"
)

// Fields maps dotted field paths ("user.username", "stats.followers")
// to new values for a partial update. An Increment value adjusts the
// field atomically instead of replacing it.
type Fields map[string]interface{}

// Increment - sentinel value for an atomic signed adjustment of a
// numeric field, applied without a read-modify-write race
type Increment struct {
	By int
}

// Inc returns an atomic increment of a numeric field by the given delta.
func Inc(by int) Increment {
	return Increment{By: by}
}

// Iterator - a lazy, paged walk over query results. Results are never
// materialized wholesale; fan-out loops consume one document at a time.
type Iterator interface {
	// Next advances to the next document. It returns false when the
	// results are exhausted or an error occurred; check Err after.
	Next(ctx context.Context) bool
	// ID returns the id of the current document.
	ID() string
	// Decode unmarshals the current document into out.
	Decode(out interface{}) error
	// Err returns the first error encountered while iterating.
	Err() error
	// Close releases the iterator.
	Close(ctx context.Context) error
}

// Batch accumulates deletes to be committed together. Implementations
// chunk oversized batches; commits across chunks are not atomic and
// failures may be partial.
type Batch interface {
	Delete(collection, id string)
	Len() int
	Commit(ctx context.Context) error
}

// Store - document store port
type Store interface {
	// Get reads a document into out. Returns ErrNotFound when absent.
	Get(ctx context.Context, collection, id string, out interface{}) error
	// Set creates or fully replaces a document.
	Set(ctx context.Context, collection, id string, doc interface{}) error
	// Update applies a partial update by dotted field paths. Returns
	// ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, fields Fields) error
	// Delete removes a document. Deleting an absent document is a no-op.
	Delete(ctx context.Context, collection, id string) error
	// Query streams documents of a collection matching field op value.
	Query(ctx context.Context, collection, field string, op Op, value interface{}) (Iterator, error)
	// List streams every document of a collection.
	List(ctx context.Context, collection string) (Iterator, error)
	// Batch starts a new delete batch.
	Batch() Batch
}
