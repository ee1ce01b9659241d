package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/ignite/internal/data"
	"github.com/iamNilotpal/ignite/pkg/datafile"
	"github.com/iamNilotpal/ignite/pkg/errors"
)

func filesPath(dir string, fileID uint32) string {
	return datafile.JoinPath(dir, datafile.GenerateName(fileID))
}

func corrupt(t *testing.T, path string, offset int) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	require.NoError(t, err)
	defer f.Close()

	b := make([]byte, 1)
	_, err = f.ReadAt(b, int64(offset))
	require.NoError(t, err)
	b[0] ^= 0xFF
	_, err = f.WriteAt(b, int64(offset))
	require.NoError(t, err)
}

func TestDataFileWriteReturnsPreAdvanceOffset(t *testing.T) {
	dir := t.TempDir()
	file, err := NewDataFile(dir, 0)
	require.NoError(t, err)
	defer file.Close()

	first := data.EncodeLogRecord(&data.LogRecord{Key: []byte("a"), Value: []byte("1"), Type: data.LogRecordNormal})
	offset, err := file.Write(first)
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset)

	second := data.EncodeLogRecord(&data.LogRecord{Key: []byte("b"), Value: []byte("2"), Type: data.LogRecordNormal})
	offset, err = file.Write(second)
	require.NoError(t, err)
	assert.Equal(t, int64(len(first)), offset)
}

func TestDataFileReadLogRecordRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file, err := NewDataFile(dir, 0)
	require.NoError(t, err)
	defer file.Close()

	rec := &data.LogRecord{Key: []byte("hello"), Value: []byte("world"), Type: data.LogRecordNormal}
	encoded := data.EncodeLogRecord(rec)

	offset, err := file.Write(encoded)
	require.NoError(t, err)

	read, err := file.ReadLogRecord(offset)
	require.NoError(t, err)
	assert.Equal(t, rec.Key, read.Record.Key)
	assert.Equal(t, rec.Value, read.Record.Value)
	assert.Equal(t, rec.Type, read.Record.Type)
	assert.Equal(t, int64(len(encoded)), read.Size)
}

func TestDataFileReadLogRecordEOFAtBlankTail(t *testing.T) {
	dir := t.TempDir()
	file, err := NewDataFile(dir, 0)
	require.NoError(t, err)
	defer file.Close()

	rec := data.EncodeLogRecord(&data.LogRecord{Key: []byte("k"), Value: []byte("v"), Type: data.LogRecordNormal})
	_, err = file.Write(rec)
	require.NoError(t, err)

	_, err = file.ReadLogRecord(int64(len(rec)))
	assert.ErrorIs(t, err, errors.ErrDataFileEOF)
}

func TestDataFileReadLogRecordDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	file, err := NewDataFile(dir, 0)
	require.NoError(t, err)

	rec := &data.LogRecord{Key: []byte("k"), Value: []byte("value"), Type: data.LogRecordNormal}
	encoded := data.EncodeLogRecord(rec)

	offset, err := file.Write(encoded)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	path := filesPath(dir, 0)
	corrupt(t, path, int(offset)+len(encoded)-6)

	reopened, err := NewDataFile(dir, 0)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.ReadLogRecord(offset)
	assert.ErrorIs(t, err, errors.ErrInvalidLogRecordCrc)
}
