package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/ignite/internal/data"
)

func TestIndexBackendsSatisfyTheSameContract(t *testing.T) {
	backends := map[string]Type{
		"btree":    Btree,
		"skiplist": SkipList,
	}

	for name, typ := range backends {
		t.Run(name, func(t *testing.T) {
			idx := New(typ)
			defer idx.Close()

			_, ok := idx.Get([]byte("missing"))
			assert.False(t, ok)

			pos := data.LogRecordPos{FileID: 0, Offset: 10}
			require.True(t, idx.Put([]byte("a"), pos))

			got, ok := idx.Get([]byte("a"))
			require.True(t, ok)
			assert.Equal(t, pos, got)

			overwrite := data.LogRecordPos{FileID: 1, Offset: 20}
			require.True(t, idx.Put([]byte("a"), overwrite))
			got, ok = idx.Get([]byte("a"))
			require.True(t, ok)
			assert.Equal(t, overwrite, got)

			assert.True(t, idx.Delete([]byte("a")))
			_, ok = idx.Get([]byte("a"))
			assert.False(t, ok)

			assert.False(t, idx.Delete([]byte("a")))
		})
	}
}
