package errors

import stdErrors "errors"

// Sentinel errors for conditions that carry no useful extra context beyond
// their identity — callers compare against these directly with errors.Is,
// while StorageError/IndexError/ValidationError carry structured context for
// everything else in the taxonomy.
var (
	// ErrKeyIsEmpty is returned when Put/Get/Delete is called with an empty key.
	ErrKeyIsEmpty = stdErrors.New("key is empty")

	// ErrKeyNotFound is returned when a key has no live entry in the index,
	// or its latest record is a tombstone.
	ErrKeyNotFound = stdErrors.New("key not found")

	// ErrDataFileNotFound is returned when the index points at a file id the
	// engine does not have open. This indicates index/storage desync.
	ErrDataFileNotFound = stdErrors.New("data file not found")

	// ErrInvalidLogRecordCrc is returned when a decoded record's stored CRC
	// does not match the CRC recomputed over its framed bytes.
	ErrInvalidLogRecordCrc = stdErrors.New("invalid log record crc")

	// ErrDataFileEOF signals a read landed on the blank tail of a data file.
	// It never escapes the engine's recovery and read-path loops.
	ErrDataFileEOF = stdErrors.New("read data file eof")

	// ErrIndexUpdateFailed is returned when an index backend rejects a Put.
	ErrIndexUpdateFailed = stdErrors.New("index update failed")

	// ErrDirPathIsEmpty is returned by Open when Options.DataDir is empty.
	ErrDirPathIsEmpty = stdErrors.New("dir path is empty")

	// ErrDataFileSizeTooSmall is returned by Open when
	// Options.SegmentOptions.Size is not a positive number of bytes.
	ErrDataFileSizeTooSmall = stdErrors.New("data file size too small")

	// ErrFailedToCreateDatabaseDir is returned by Open when the configured
	// data directory does not exist and cannot be created.
	ErrFailedToCreateDatabaseDir = stdErrors.New("failed to create database directory")

	// ErrFailedToReadDatabaseDir is returned by Open when the configured
	// data directory cannot be listed.
	ErrFailedToReadDatabaseDir = stdErrors.New("failed to read database directory")

	// ErrDataDirectoryCorrupted is returned by Open when a directory entry
	// ending in the data file suffix has an unparsable file id.
	ErrDataDirectoryCorrupted = stdErrors.New("data directory corrupted")

	// ErrEngineClosed is returned when an operation is attempted against an
	// engine that has already been closed.
	ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")
)
