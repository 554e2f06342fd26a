package keyedhash

import (
	"hash"

	"github.com/dchest/blake2b"
)

const (
	// BlockSize is the BLAKE2b block size in bytes.
	BlockSize = blake2b.BlockSize
	// Size is the largest digest BLAKE2b can produce.
	Size = blake2b.Size
	// KeySize is the largest key BLAKE2b accepts.
	KeySize = blake2b.KeySize
	// PersonSize is the width of the personalization field.
	PersonSize = blake2b.PersonSize
)

// New returns a keyed, personalized BLAKE2b hash.Hash producing size bytes.
// A person shorter than PersonSize is zero-padded.
func New(size int, key, person []byte) (hash.Hash, error) {
	switch {
	case size < 1 || size > Size:
		return nil, ErrInvalidSize
	case len(key) > KeySize:
		return nil, ErrKeyTooLong
	case len(person) > PersonSize:
		return nil, ErrPersonTooLong
	}

	return blake2b.New(&blake2b.Config{
		Size:   uint8(size),
		Key:    key,
		Person: person,
	})
}

// Sum computes the size-byte keyed BLAKE2b digest of data under the given
// personalization.
func Sum(data, key, person []byte, size int) ([]byte, error) {
	h, err := New(size, key, person)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}
