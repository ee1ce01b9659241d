package index

import (
	"sync"

	"github.com/huandu/skiplist"

	"github.com/iamNilotpal/ignite/internal/data"
)

type skipListIndex struct {
	mu   sync.RWMutex
	list *skiplist.SkipList
}

func newSkipListIndex() *skipListIndex {
	return &skipListIndex{list: skiplist.New(skiplist.Bytes)}
}

func (s *skipListIndex) Put(key []byte, pos data.LogRecordPos) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Set(key, pos)
	return true
}

func (s *skipListIndex) Get(key []byte) (data.LogRecordPos, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	elem := s.list.Get(key)
	if elem == nil {
		return data.LogRecordPos{}, false
	}
	return elem.Value.(data.LogRecordPos), true
}

func (s *skipListIndex) Delete(key []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Remove(key) != nil
}

func (s *skipListIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Init()
	return nil
}
