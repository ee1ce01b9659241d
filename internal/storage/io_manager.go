package storage

import (
	"os"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// dataFilePermission is the mode new data files are created with.
const dataFilePermission = 0644

// IOManager is the capability a DataFile appends to and reads from. Any type
// satisfying this contract — a regular file, a memory-mapped region, an
// in-memory fake for tests — can back a DataFile.
type IOManager interface {
	// Write appends buf to the end of the underlying file and returns the
	// number of bytes written.
	Write(buf []byte) (int, error)

	// ReadAt fills buf starting at offset. A short read caused by EOF is
	// reported through the returned error so callers can distinguish it
	// from a lower-level failure.
	ReadAt(buf []byte, offset int64) (int, error)

	// Sync flushes the file to stable storage.
	Sync() error

	// Close releases the underlying file descriptor.
	Close() error

	// Size reports the current length of the file.
	Size() (int64, error)
}

// osFileIO is the default IOManager, backed by a regular OS file opened for
// append-and-random-read.
type osFileIO struct {
	file *os.File
	path string
	name string
}

// NewIOManager opens (creating if necessary) the file at path and returns an
// IOManager backed by it.
func NewIOManager(path, name string) (IOManager, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, dataFilePermission)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, name)
	}
	return &osFileIO{file: file, path: path, name: name}, nil
}

func (io *osFileIO) Write(buf []byte) (int, error) {
	n, err := io.file.Write(buf)
	if err != nil {
		return n, errors.NewStorageError(err, errors.ErrorCodeIO, "Failed to write to data file").
			WithFileName(io.name).
			WithPath(io.path).
			WithDetail("operation", "write").
			WithDetail("bytesAttempted", len(buf))
	}
	return n, nil
}

func (io *osFileIO) ReadAt(buf []byte, offset int64) (int, error) {
	n, err := io.file.ReadAt(buf, offset)
	if err != nil {
		// io.EOF / io.ErrUnexpectedEOF are expected at the tail of the
		// active file; callers interpret a short read there as the clean
		// end of valid data, not a storage failure.
		return n, err
	}
	return n, nil
}

func (io *osFileIO) Sync() error {
	if err := io.file.Sync(); err != nil {
		return errors.ClassifySyncError(err, io.name, io.path, 0)
	}
	return nil
}

func (io *osFileIO) Close() error {
	if err := io.file.Close(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "Failed to close data file").
			WithFileName(io.name).
			WithPath(io.path)
	}
	return nil
}

func (io *osFileIO) Size() (int64, error) {
	stat, err := io.file.Stat()
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "Failed to stat data file").
			WithFileName(io.name).
			WithPath(io.path)
	}
	return stat.Size(), nil
}
