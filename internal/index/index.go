// Package index maintains the in-memory mapping from key to on-disk
// location that lets the engine serve reads without scanning data files.
// Two interchangeable backends satisfy the same contract; the engine is
// agnostic to which one is wired in.
package index

import (
	"github.com/iamNilotpal/ignite/internal/data"
)

// Type selects which concrete Indexer backend New constructs.
type Type uint8

const (
	// Btree wraps github.com/google/btree's generic BTreeG, ordered by raw
	// byte comparison of the key.
	Btree Type = iota
	// SkipList wraps github.com/huandu/skiplist, the alternate ordered
	// structure the options surface names.
	SkipList
)

// Indexer is the contract every index backend satisfies. Implementations
// hold their own locking discipline; concurrent Get must be safe alongside
// concurrent Put/Delete.
type Indexer interface {
	// Put inserts or overwrites the position for key. Both reference
	// implementations always succeed and return true.
	Put(key []byte, pos data.LogRecordPos) bool

	// Get returns the current position for key, or false if absent.
	Get(key []byte) (data.LogRecordPos, bool)

	// Delete removes the mapping for key, returning true iff one existed.
	Delete(key []byte) bool

	// Close releases index resources.
	Close() error
}

// New constructs the Indexer backend named by t.
func New(t Type) Indexer {
	switch t {
	case SkipList:
		return newSkipListIndex()
	default:
		return newBtreeIndex()
	}
}
