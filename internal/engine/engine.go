// Package engine coordinates the storage and index subsystems into the
// single entry point the rest of the system talks to: Open, Put, Get,
// Delete and Close. It owns every DataFile and the Index, and is
// responsible for append ordering, rotation and open-time recovery.
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/iamNilotpal/ignite/internal/data"
	"github.com/iamNilotpal/ignite/internal/index"
	"github.com/iamNilotpal/ignite/internal/storage"
	"github.com/iamNilotpal/ignite/pkg/datafile"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// dataDirPermission is the mode the data directory is created with when it
// does not already exist.
const dataDirPermission = 0755

// InitialFileID is the id assigned to the first data file of a brand new,
// empty data directory.
const InitialFileID uint32 = 0

// Engine is the main database engine. It coordinates the index and the set
// of data files, and is safe for concurrent use by multiple goroutines.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool

	idx index.Indexer

	// activeMu guards active; it is acquired exclusively for writes and
	// rollover, and for shared reads against the active file.
	activeMu sync.RWMutex
	active   *storage.DataFile

	// olderMu guards olderFiles, which is only mutated during rollover and
	// read by every get that targets a non-active file.
	olderMu    sync.RWMutex
	olderFiles map[uint32]*storage.DataFile
}

// Open opens (or initializes) the engine's data directory, rebuilds the
// index from whatever records are on disk, and returns a ready-to-use
// Engine.
func Open(ctx context.Context, opts *options.Options, logger *zap.SugaredLogger) (*Engine, error) {
	if opts == nil || opts.DataDir == "" {
		logger.Warnw("Rejecting Open: data directory is required")
		return nil, errors.NewValidationError(errors.ErrDirPathIsEmpty, errors.ErrorCodeDirPathEmpty, "Data directory is required").
			WithField("DataDir").
			WithRule("required")
	}
	if opts.SegmentOptions == nil || opts.SegmentOptions.Size == 0 {
		logger.Warnw("Rejecting Open: segment size must be positive", "dataDir", opts.DataDir)
		return nil, errors.NewValidationError(errors.ErrDataFileSizeTooSmall, errors.ErrorCodeDataFileSizeTooSmall, "Segment size must be greater than zero").
			WithField("SegmentOptions.Size").
			WithRule("positive")
	}

	logger.Infow("Opening engine", "dataDir", opts.DataDir, "maxSegmentSize", opts.SegmentOptions.Size, "indexType", opts.IndexType)

	exists, err := filesys.Exists(opts.DataDir)
	if err != nil {
		wrapped := errors.NewStorageError(err, errors.ErrorCodeIO, "Failed to stat database directory").
			WithPath(opts.DataDir)
		logger.Errorw("Failed to stat data directory", "error", wrapped, "dataDir", opts.DataDir)
		return nil, wrapped
	}
	if !exists {
		if err := filesys.CreateDir(opts.DataDir, dataDirPermission, true); err != nil {
			wrapped := errors.WithSentinel(errors.ClassifyDirectoryCreationError(err, opts.DataDir), errors.ErrFailedToCreateDatabaseDir)
			logger.Errorw("Failed to create data directory", "error", wrapped, "dataDir", opts.DataDir)
			return nil, wrapped
		}
		logger.Infow("Created data directory", "dataDir", opts.DataDir)
	}

	fileIDs, err := datafile.Discover(opts.DataDir)
	if err != nil {
		if name, ok := datafile.Name(err); ok {
			wrapped := errors.WithSentinel(
				errors.NewStorageError(err, errors.ErrorCodeDataDirectoryCorrupted, "Data directory contains an unparsable entry").
					WithPath(opts.DataDir).
					WithFileName(name),
				errors.ErrDataDirectoryCorrupted,
			)
			logger.Errorw("Data directory contains an unparsable entry", "error", wrapped, "dataDir", opts.DataDir, "fileName", name)
			return nil, wrapped
		}
		wrapped := errors.WithSentinel(
			errors.NewStorageError(err, errors.ErrorCodeIO, "Failed to read database directory").WithPath(opts.DataDir),
			errors.ErrFailedToReadDatabaseDir,
		)
		logger.Errorw("Failed to read data directory", "error", wrapped, "dataDir", opts.DataDir)
		return nil, wrapped
	}

	e := &Engine{
		options:    opts,
		log:        logger,
		idx:        index.New(opts.IndexType),
		olderFiles: make(map[uint32]*storage.DataFile),
	}

	if len(fileIDs) == 0 {
		active, err := storage.NewDataFile(opts.DataDir, InitialFileID)
		if err != nil {
			logger.Errorw("Failed to open initial data file", "error", err, "dataDir", opts.DataDir)
			return nil, err
		}
		e.active = active
		logger.Infow("Engine opened with a fresh data directory", "dataDir", opts.DataDir, "activeFileID", InitialFileID)
		return e, nil
	}

	activeID := fileIDs[len(fileIDs)-1]
	for _, id := range fileIDs {
		file, err := storage.NewDataFile(opts.DataDir, id)
		if err != nil {
			logger.Errorw("Failed to open data file during startup", "error", err, "dataDir", opts.DataDir, "fileID", id)
			return nil, err
		}
		if id == activeID {
			e.active = file
		} else {
			e.olderFiles[id] = file
		}
	}

	if err := e.loadIndexFromDataFiles(fileIDs); err != nil {
		logger.Errorw("Failed to rebuild index from data files", "error", err, "dataDir", opts.DataDir, "fileCount", len(fileIDs))
		return nil, err
	}

	logger.Infow("Engine opened and index rebuilt", "dataDir", opts.DataDir, "activeFileID", activeID, "fileCount", len(fileIDs))
	return e, nil
}

// Put writes key/value as a new record and updates the index to point at it.
func (e *Engine) Put(key, value []byte) error {
	if e.closed.Load() {
		return errors.ErrEngineClosed
	}
	if len(key) == 0 {
		return errors.ErrKeyIsEmpty
	}

	record := &data.LogRecord{Key: key, Value: value, Type: data.LogRecordNormal}
	pos, err := e.appendLogRecord(record)
	if err != nil {
		return err
	}

	if ok := e.idx.Put(key, pos); !ok {
		return errors.ErrIndexUpdateFailed
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op that returns nil;
// no tombstone is written in that case.
func (e *Engine) Delete(key []byte) error {
	if e.closed.Load() {
		return errors.ErrEngineClosed
	}
	if len(key) == 0 {
		return errors.ErrKeyIsEmpty
	}

	if _, ok := e.idx.Get(key); !ok {
		return nil
	}

	record := &data.LogRecord{Key: key, Type: data.LogRecordTombstone}
	if _, err := e.appendLogRecord(record); err != nil {
		return err
	}

	e.idx.Delete(key)
	return nil
}

// Get returns the current value for key.
func (e *Engine) Get(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, errors.ErrEngineClosed
	}
	if len(key) == 0 {
		return nil, errors.ErrKeyIsEmpty
	}

	pos, ok := e.idx.Get(key)
	if !ok {
		return nil, errors.ErrKeyNotFound
	}

	file, err := e.fileForPos(pos)
	if err != nil {
		return nil, err
	}

	result, err := file.ReadLogRecord(pos.Offset)
	if err != nil {
		return nil, err
	}
	if result.Record.Type == data.LogRecordTombstone {
		return nil, errors.ErrKeyNotFound
	}
	return result.Record.Value, nil
}

// Close flushes and closes every open data file, then the index, aggregating
// any errors encountered along the way.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return errors.ErrEngineClosed
	}

	e.log.Infow("Closing engine", "dataDir", e.options.DataDir)

	var err error

	e.activeMu.Lock()
	err = multierr.Append(err, e.active.Sync())
	err = multierr.Append(err, e.active.Close())
	e.activeMu.Unlock()

	e.olderMu.Lock()
	for _, file := range e.olderFiles {
		err = multierr.Append(err, file.Close())
	}
	e.olderMu.Unlock()

	err = multierr.Append(err, e.idx.Close())
	if err != nil {
		e.log.Errorw("Errors encountered while closing engine", "error", err, "dataDir", e.options.DataDir)
	}
	return err
}

func (e *Engine) fileForPos(pos data.LogRecordPos) (*storage.DataFile, error) {
	e.activeMu.RLock()
	if pos.FileID == e.active.FileID() {
		file := e.active
		e.activeMu.RUnlock()
		return file, nil
	}
	e.activeMu.RUnlock()

	e.olderMu.RLock()
	defer e.olderMu.RUnlock()
	file, ok := e.olderFiles[pos.FileID]
	if !ok {
		return nil, errors.ErrDataFileNotFound
	}
	return file, nil
}

// appendLogRecord encodes record, rotating the active file first if the
// encoded record would push it past the configured size threshold.
func (e *Engine) appendLogRecord(record *data.LogRecord) (data.LogRecordPos, error) {
	encoded := data.EncodeLogRecord(record)
	length := int64(len(encoded))

	e.activeMu.Lock()
	defer e.activeMu.Unlock()

	if e.active.WriteOffset()+length > int64(e.options.SegmentOptions.Size) {
		if err := e.active.Sync(); err != nil {
			e.log.Errorw("Failed to sync active data file before rollover", "error", err, "fileID", e.active.FileID())
			return data.LogRecordPos{}, err
		}

		oldID := e.active.FileID()
		e.olderMu.Lock()
		e.olderFiles[oldID] = e.active
		e.olderMu.Unlock()

		fresh, err := storage.NewDataFile(e.options.DataDir, oldID+1)
		if err != nil {
			e.log.Errorw("Failed to open new active data file on rollover", "error", err, "oldFileID", oldID, "newFileID", oldID+1)
			return data.LogRecordPos{}, err
		}
		e.active = fresh
		e.log.Infow("Rotated active data file", "oldFileID", oldID, "newFileID", oldID+1, "maxSegmentSize", e.options.SegmentOptions.Size)
	}

	offset, err := e.active.Write(encoded)
	if err != nil {
		e.log.Errorw("Failed to append record to active data file", "error", err, "fileID", e.active.FileID())
		return data.LogRecordPos{}, err
	}

	if e.options.SyncWrites {
		if err := e.active.Sync(); err != nil {
			e.log.Errorw("Failed to sync active data file after write", "error", err, "fileID", e.active.FileID())
			return data.LogRecordPos{}, err
		}
	}

	return data.LogRecordPos{FileID: e.active.FileID(), Offset: offset}, nil
}

// loadIndexFromDataFiles replays every data file in ascending id order,
// rebuilding the index so the last write to any key wins, and leaves the
// active file's write offset positioned after its last valid record.
func (e *Engine) loadIndexFromDataFiles(fileIDs []uint32) error {
	activeID := fileIDs[len(fileIDs)-1]
	e.log.Infow("Rebuilding index from data files", "fileCount", len(fileIDs), "activeFileID", activeID)

	for _, id := range fileIDs {
		file, err := e.fileByID(id)
		if err != nil {
			return err
		}

		var offset int64
		for {
			result, err := file.ReadLogRecord(offset)
			if err == errors.ErrDataFileEOF {
				break
			}
			if err != nil && err != errors.ErrInvalidLogRecordCrc {
				e.log.Errorw("Aborting recovery on I/O error", "error", err, "fileID", id, "offset", offset)
				return err
			}
			// A CRC mismatch still leaves the record's boundaries and key
			// trustworthy (the header decoded cleanly); index it as usual
			// so a later Get re-reads it and surfaces the corruption then,
			// rather than losing the whole directory to one bad record.
			if err == errors.ErrInvalidLogRecordCrc {
				e.log.Warnw("Recovered record failed its CRC check; indexing it anyway", "fileID", id, "offset", offset, "key", string(result.Record.Key))
			}

			pos := data.LogRecordPos{FileID: id, Offset: offset}
			switch result.Record.Type {
			case data.LogRecordNormal:
				if ok := e.idx.Put(result.Record.Key, pos); !ok {
					// A rejected Put during replay means the index backend
					// itself is in a state recovery cannot trust going
					// forward, not an ordinary write failure.
					corruptionErr := errors.NewIndexCorruptionError("Recovery", 0, errors.ErrIndexUpdateFailed).
						WithKey(string(result.Record.Key))
					e.log.Errorw("Index rejected a record during recovery", "error", corruptionErr, "fileID", id, "offset", offset, "key", string(result.Record.Key))
					return corruptionErr
				}
			case data.LogRecordTombstone:
				e.idx.Delete(result.Record.Key)
			}

			offset += result.Size
		}

		if id == activeID {
			file.SetWriteOffset(offset)
		}
	}

	e.log.Infow("Index rebuilt from data files", "fileCount", len(fileIDs))
	return nil
}

func (e *Engine) fileByID(id uint32) (*storage.DataFile, error) {
	if id == e.active.FileID() {
		return e.active, nil
	}
	file, ok := e.olderFiles[id]
	if !ok {
		return nil, errors.ErrDataFileNotFound
	}
	return file, nil
}
