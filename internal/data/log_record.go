// Package data defines the on-disk record format shared by every data file in
// the engine: a length-delimited, CRC-protected frame carrying a key, a value
// and a type tag (normal write or tombstone).
package data

import (
	"encoding/binary"
	"hash/crc32"
)

// LogRecordType tags what kind of mutation a record represents.
type LogRecordType = byte

const (
	// LogRecordNormal marks a live key/value write.
	LogRecordNormal LogRecordType = iota + 1
	// LogRecordTombstone marks a key as deleted. The value is always empty.
	LogRecordTombstone
)

// MaxLogRecordHeaderSize bounds the header prefetch: one type byte plus two
// uvarints wide enough to hold a uint32 each.
const MaxLogRecordHeaderSize = 1 + 2*binary.MaxVarintLen32

// LogRecord is the logical unit appended to a data file.
type LogRecord struct {
	Key   []byte
	Value []byte
	Type  LogRecordType
}

// LogRecordPos locates a record on disk: which file and at what byte offset
// the record's header begins.
type LogRecordPos struct {
	FileID uint32
	Offset int64
}

// ReadLogRecord is what DataFile.ReadLogRecord returns: the decoded record
// plus the total number of bytes it occupies on disk, so callers can advance
// a scan cursor without re-deriving the size.
type ReadLogRecord struct {
	Record *LogRecord
	Size   int64
}

// EncodeLogRecord serializes a record into its wire form:
//
//	+------+----------+------------+-----+-------+-----+
//	| type | key size | value size | key | value | crc |
//	+------+----------+------------+-----+-------+-----+
//	  1B     varint      varint      ...   ...      4B
//
// The CRC is an IEEE CRC-32 computed over everything that precedes it,
// stored little-endian.
func EncodeLogRecord(record *LogRecord) []byte {
	header := make([]byte, MaxLogRecordHeaderSize)
	header[0] = record.Type

	index := 1
	index += binary.PutUvarint(header[index:], uint64(len(record.Key)))
	index += binary.PutUvarint(header[index:], uint64(len(record.Value)))

	size := index + len(record.Key) + len(record.Value)
	encoded := make([]byte, size+crc32.Size)

	copy(encoded[:index], header[:index])
	copy(encoded[index:], record.Key)
	copy(encoded[index+len(record.Key):], record.Value)

	crc := crc32.ChecksumIEEE(encoded[:size])
	binary.LittleEndian.PutUint32(encoded[size:], crc)

	return encoded
}

// DecodeHeader parses the leading type byte and the two uvarint length
// fields out of a prefetched buffer. It returns the number of header bytes
// consumed so the caller can locate the key/value/crc region that follows.
//
// A zero keySize and zero valueSize together signal a blank tail (the
// prefetch ran past the last record written) rather than a legitimate
// zero-length key, since keys are never empty.
func DecodeHeader(buf []byte) (recordType LogRecordType, keySize, valueSize uint32, headerSize int) {
	if len(buf) < 1 {
		return 0, 0, 0, 0
	}

	recordType = buf[0]
	index := 1

	ks, n := binary.Uvarint(buf[index:])
	index += n
	vs, n := binary.Uvarint(buf[index:])
	index += n

	return recordType, uint32(ks), uint32(vs), index
}

// HeaderLen returns the number of header bytes a record with the given key
// and value sizes occupies: one type byte plus the uvarint encodings of
// both lengths.
func HeaderLen(keySize, valueSize uint32) int {
	return 1 + uvarintLen(uint64(keySize)) + uvarintLen(uint64(valueSize))
}

func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// CRC recomputes the checksum that should trail a record given its decoded
// header and body, for comparison against the stored value on read.
func CRC(recordType LogRecordType, keySize, valueSize uint32, key, value []byte) uint32 {
	header := make([]byte, HeaderLen(keySize, valueSize))
	header[0] = recordType
	idx := 1
	idx += binary.PutUvarint(header[idx:], uint64(keySize))
	binary.PutUvarint(header[idx:], uint64(valueSize))

	crc := crc32.ChecksumIEEE(header)
	crc = crc32.Update(crc, crc32.IEEETable, key)
	crc = crc32.Update(crc, crc32.IEEETable, value)
	return crc
}
