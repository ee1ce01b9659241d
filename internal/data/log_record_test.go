package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []*LogRecord{
		{Key: []byte("a"), Value: []byte("1"), Type: LogRecordNormal},
		{Key: []byte("longer-key"), Value: []byte(""), Type: LogRecordNormal},
		{Key: []byte("deleted"), Value: nil, Type: LogRecordTombstone},
	}

	for _, rec := range cases {
		encoded := EncodeLogRecord(rec)

		recordType, keySize, valueSize, headerSize := DecodeHeader(encoded)
		require.Equal(t, rec.Type, recordType)
		require.Equal(t, len(rec.Key), int(keySize))
		require.Equal(t, len(rec.Value), int(valueSize))

		key := encoded[headerSize : headerSize+int(keySize)]
		value := encoded[headerSize+int(keySize) : headerSize+int(keySize)+int(valueSize)]
		assert.Equal(t, rec.Key, key)
		assert.Equal(t, rec.Value, value)

		crc := CRC(recordType, keySize, valueSize, key, value)
		stored := encoded[headerSize+int(keySize)+int(valueSize):]
		assert.Equal(t, crc, uint32(stored[0])|uint32(stored[1])<<8|uint32(stored[2])<<16|uint32(stored[3])<<24)
	}
}

func TestCRCDetectsBitFlip(t *testing.T) {
	rec := &LogRecord{Key: []byte("k"), Value: []byte("value"), Type: LogRecordNormal}
	encoded := EncodeLogRecord(rec)

	for i := range encoded {
		flipped := append([]byte(nil), encoded...)
		flipped[i] ^= 0x01

		recordType, keySize, valueSize, headerSize := DecodeHeader(flipped)
		if int(keySize)+int(valueSize)+headerSize+4 != len(flipped) {
			// A flip in the length varints themselves changes the framing;
			// that is still detected, just not via a CRC mismatch on this slice.
			continue
		}

		key := flipped[headerSize : headerSize+int(keySize)]
		value := flipped[headerSize+int(keySize) : headerSize+int(keySize)+int(valueSize)]
		stored := flipped[headerSize+int(keySize)+int(valueSize):]
		storedCRC := uint32(stored[0]) | uint32(stored[1])<<8 | uint32(stored[2])<<16 | uint32(stored[3])<<24

		got := CRC(recordType, keySize, valueSize, key, value)
		assert.NotEqual(t, storedCRC, got, "byte %d: bit flip should be detected", i)
	}
}

func TestDecodeHeaderBlankTail(t *testing.T) {
	blank := make([]byte, MaxLogRecordHeaderSize)
	recordType, keySize, valueSize, _ := DecodeHeader(blank)
	assert.Equal(t, LogRecordType(0), recordType)
	assert.Equal(t, uint32(0), keySize)
	assert.Equal(t, uint32(0), valueSize)
}

func TestHeaderLenMatchesEncoding(t *testing.T) {
	rec := &LogRecord{Key: []byte("some-key"), Value: []byte("some-value"), Type: LogRecordNormal}
	encoded := EncodeLogRecord(rec)
	_, keySize, valueSize, headerSize := DecodeHeader(encoded)
	assert.Equal(t, HeaderLen(keySize, valueSize), headerSize)
}
