package index

import (
	"bytes"
	"sync"

	"github.com/google/btree"

	"github.com/iamNilotpal/ignite/internal/data"
)

// indexEntry is the node type stored in the btree, ordered by raw key bytes.
type indexEntry struct {
	key []byte
	pos data.LogRecordPos
}

func entryLess(a, b *indexEntry) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// btreeDegree mirrors google/btree's own default example usage; it has no
// correctness effect, only a minor influence on node fan-out.
const btreeDegree = 32

type btreeIndex struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[*indexEntry]
}

func newBtreeIndex() *btreeIndex {
	return &btreeIndex{tree: btree.NewG(btreeDegree, entryLess)}
}

func (b *btreeIndex) Put(key []byte, pos data.LogRecordPos) bool {
	entry := &indexEntry{key: key, pos: pos}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tree.ReplaceOrInsert(entry)
	return true
}

func (b *btreeIndex) Get(key []byte) (data.LogRecordPos, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	found, ok := b.tree.Get(&indexEntry{key: key})
	if !ok {
		return data.LogRecordPos{}, false
	}
	return found.pos, true
}

func (b *btreeIndex) Delete(key []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.tree.Delete(&indexEntry{key: key})
	return ok
}

func (b *btreeIndex) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tree.Clear(false)
	return nil
}
