// Package storage implements the DataFile abstraction: a single numbered,
// append-only file plus the positional decode logic needed to read a record
// back out of it. It knows nothing about rotation, recovery ordering, or the
// index — those are the Engine's concerns (internal/engine). DataFile only
// guarantees that Write returns the offset a record started at and that
// ReadLogRecord can reconstruct any record previously written at a given
// offset.
package storage

import (
	"encoding/binary"
	"io"

	"github.com/iamNilotpal/ignite/internal/data"
	"github.com/iamNilotpal/ignite/pkg/datafile"
	"github.com/iamNilotpal/ignite/pkg/errors"
)

// DataFile is one physical, numbered file in the data directory.
type DataFile struct {
	fileID      uint32
	writeOffset int64
	io          IOManager
}

// NewDataFile opens or creates the data file identified by fileID inside
// dirPath, naming it per the fixed {fileID:09}.data convention.
func NewDataFile(dirPath string, fileID uint32) (*DataFile, error) {
	name := datafile.GenerateName(fileID)
	path := datafile.JoinPath(dirPath, name)

	io, err := NewIOManager(path, name)
	if err != nil {
		return nil, err
	}

	return &DataFile{fileID: fileID, io: io}, nil
}

// FileID returns the numeric identifier of this data file.
func (f *DataFile) FileID() uint32 {
	return f.fileID
}

// WriteOffset returns the current append position.
func (f *DataFile) WriteOffset() int64 {
	return f.writeOffset
}

// SetWriteOffset overrides the append position. Used by recovery to
// position the active file's cursor at the end of its last valid record.
func (f *DataFile) SetWriteOffset(offset int64) {
	f.writeOffset = offset
}

// Write appends buf and returns the offset the data was written at — the
// offset the index must remember to find this record again, not the
// post-write offset.
func (f *DataFile) Write(buf []byte) (int64, error) {
	start := f.writeOffset
	n, err := f.io.Write(buf)
	// A partial write is not rolled back; the offset still advances by
	// however many bytes reached the file.
	f.writeOffset += int64(n)
	if err != nil {
		return 0, err
	}
	return start, nil
}

// Sync flushes the file to stable storage.
func (f *DataFile) Sync() error {
	return f.io.Sync()
}

// Close releases the underlying file descriptor.
func (f *DataFile) Close() error {
	return f.io.Close()
}

// ReadLogRecord decodes the record beginning at offset.
//
// It first prefetches data.MaxLogRecordHeaderSize bytes to parse the type
// tag and the two length varints, then issues a second read sized exactly
// to the key+value+crc region those lengths describe.
func (f *DataFile) ReadLogRecord(offset int64) (*data.ReadLogRecord, error) {
	headerBuf := make([]byte, data.MaxLogRecordHeaderSize)
	n, err := f.io.ReadAt(headerBuf, offset)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.NewStorageError(err, errors.ErrorCodeHeaderReadFailure, "Failed to read record header").
			WithOffset(int(offset))
	}
	headerBuf = headerBuf[:n]

	recordType, keySize, valueSize, headerSize := data.DecodeHeader(headerBuf)
	if keySize == 0 && valueSize == 0 {
		return nil, errors.ErrDataFileEOF
	}

	kvBuf := make([]byte, int(keySize)+int(valueSize)+4)
	if _, err := f.io.ReadAt(kvBuf, offset+int64(headerSize)); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.NewStorageError(err, errors.ErrorCodePayloadReadFailure, "Failed to read record payload").
			WithOffset(int(offset + int64(headerSize)))
	}

	key := kvBuf[:keySize]
	value := kvBuf[keySize : keySize+valueSize]
	storedCRC := binary.LittleEndian.Uint32(kvBuf[keySize+valueSize:])

	read := &data.ReadLogRecord{
		Record: &data.LogRecord{Key: key, Value: value, Type: recordType},
		Size:   int64(headerSize) + int64(keySize) + int64(valueSize) + 4,
	}

	if got := data.CRC(recordType, keySize, valueSize, key, value); got != storedCRC {
		// The header decoded cleanly, so the record's boundaries (and thus
		// its size and key) are trustworthy even though its payload is not.
		// Callers that only need to keep scanning past this record use
		// read.Size; callers that need the payload must treat this as fatal.
		return read, errors.ErrInvalidLogRecordCrc
	}

	return read, nil
}
