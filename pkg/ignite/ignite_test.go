package ignite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/ignite/pkg/options"
)

func TestInstanceSetGetDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	inst, err := NewInstance(ctx, "ignite-test", options.WithDataDir(dir))
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Set(ctx, "a", []byte("1")))

	value, err := inst.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	require.NoError(t, inst.Delete(ctx, "a"))

	_, err = inst.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
