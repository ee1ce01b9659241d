package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iamNilotpal/ignite/internal/index"
	"github.com/iamNilotpal/ignite/pkg/datafile"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/options"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestPutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	eng, err := Open(context.Background(), &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}, testLogger())
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Put([]byte("a"), []byte("1")))
	value, err := eng.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	assert.FileExists(t, filepath.Join(dir, datafile.GenerateName(0)))
}

func TestPutOverwritesPreviousValue(t *testing.T) {
	dir := t.TempDir()
	eng, err := Open(context.Background(), &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}, testLogger())
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Put([]byte("a"), []byte("1")))
	require.NoError(t, eng.Put([]byte("a"), []byte("2")))

	value, err := eng.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), value)
}

func TestDeleteThenGetReturnsKeyNotFound(t *testing.T) {
	dir := t.TempDir()
	eng, err := Open(context.Background(), &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}, testLogger())
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.Put([]byte("a"), []byte("1")))
	require.NoError(t, eng.Delete([]byte("a")))

	_, err = eng.Get([]byte("a"))
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestDeleteOfAbsentKeyIsNoOp(t *testing.T) {
	dir := t.TempDir()
	eng, err := Open(context.Background(), &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}, testLogger())
	require.NoError(t, err)
	defer eng.Close()

	assert.NoError(t, eng.Delete([]byte("never-written")))
}

func TestCloseAndReopenPreservesWrites(t *testing.T) {
	dir := t.TempDir()
	opts := &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}

	eng, err := Open(context.Background(), opts, testLogger())
	require.NoError(t, err)
	require.NoError(t, eng.Put([]byte("a"), []byte("1")))
	require.NoError(t, eng.Put([]byte("b"), []byte("2")))
	require.NoError(t, eng.Delete([]byte("b")))
	require.NoError(t, eng.Close())

	reopened, err := Open(context.Background(), opts, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	_, err = reopened.Get([]byte("b"))
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestRotationCreatesAdditionalDataFiles(t *testing.T) {
	dir := t.TempDir()
	// A tiny segment size forces rotation well before a real deployment
	// ever would; constructing Options directly bypasses
	// options.WithSegmentSize's production-sized min/max guard.
	opts := &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(64),
	}

	eng, err := Open(context.Background(), opts, testLogger())
	require.NoError(t, err)
	defer eng.Close()

	for i := 0; i < 10; i++ {
		k := []byte{'k', byte('0' + i)}
		v := []byte{'v', byte('0' + i)}
		require.NoError(t, eng.Put(k, v))
	}

	for i := 0; i < 10; i++ {
		k := []byte{'k', byte('0' + i)}
		v := []byte{'v', byte('0' + i)}
		got, err := eng.Get(k)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2)
}

func TestOpenRejectsCorruptedDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.data"), nil, 0644))

	_, err := Open(context.Background(), &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}, testLogger())
	assert.True(t, errors.IsStorageError(err))
	assert.ErrorIs(t, err, errors.ErrDataDirectoryCorrupted)
}

func TestOpenRejectsEmptyDataDir(t *testing.T) {
	_, err := Open(context.Background(), &options.Options{
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}, testLogger())
	assert.ErrorIs(t, err, errors.ErrDirPathIsEmpty)
}

func TestOpenRejectsZeroSegmentSize(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(context.Background(), &options.Options{
		DataDir:        dir,
		SegmentOptions: options.NewSegmentOptions(0),
	}, testLogger())
	assert.ErrorIs(t, err, errors.ErrDataFileSizeTooSmall)
}

func TestRecoveryToleratesCorruptedRecord(t *testing.T) {
	dir := t.TempDir()
	opts := &options.Options{
		DataDir:        dir,
		IndexType:      index.Btree,
		SegmentOptions: options.NewSegmentOptions(options.DefaultSegmentSize),
	}

	eng, err := Open(context.Background(), opts, testLogger())
	require.NoError(t, err)
	require.NoError(t, eng.Put([]byte("a"), []byte("value")))
	require.NoError(t, eng.Close())

	path := filepath.Join(dir, datafile.GenerateName(0))
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	require.NoError(t, err)
	stat, err := f.Stat()
	require.NoError(t, err)
	// Flip the last byte of the value region, just before the 4-byte
	// trailing CRC, without touching the header's length fields.
	offset := stat.Size() - 5
	b := make([]byte, 1)
	_, err = f.ReadAt(b, offset)
	require.NoError(t, err)
	b[0] ^= 0xFF
	_, err = f.WriteAt(b, offset)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := Open(context.Background(), opts, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Get([]byte("a"))
	assert.ErrorIs(t, err, errors.ErrInvalidLogRecordCrc)
}
