package token

import (
	"encoding/binary"
	"time"
)

// EpochOffset is 2020-01-01T00:00:00Z. Timestamps are stored relative to it
// so they fit a signed 32-bit integer until 2088.
const EpochOffset int64 = 1577836800

const timestampSize = 4

// PackTimestamp encodes now as a 4-byte big-endian signed offset from
// EpochOffset.
func PackTimestamp(now time.Time) []byte {
	buf := make([]byte, timestampSize)
	binary.BigEndian.PutUint32(buf, uint32(int32(now.Unix()-EpochOffset)))
	return buf
}

// UnpackTimestamp reads a timestamp written by PackTimestamp and returns the
// token age in seconds at now, with the remaining bytes. The age is negative
// for tokens stamped in the future.
func UnpackTimestamp(data []byte, now time.Time) (age int64, rest []byte, err error) {
	if len(data) < timestampSize {
		return 0, nil, ErrMalformedTimestamp
	}
	stamp := int64(int32(binary.BigEndian.Uint32(data[:timestampSize])))
	return now.Unix() - EpochOffset - stamp, data[timestampSize:], nil
}
