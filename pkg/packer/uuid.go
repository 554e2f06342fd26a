package packer

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID packs 16-byte UUIDs. Pack accepts uuid.UUID, [16]byte, a 16-byte
// slice or the canonical string form; Unpack returns uuid.UUID.
var UUID Packer = uuidPacker{}

type uuidPacker struct{}

func (uuidPacker) Pack(pk any) ([]byte, error) {
	var id uuid.UUID
	switch v := pk.(type) {
	case uuid.UUID:
		id = v
	case [16]byte:
		id = uuid.UUID(v)
	case []byte:
		parsed, err := uuid.FromBytes(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedType, err)
		}
		id = parsed
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedType, err)
		}
		id = parsed
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, pk)
	}
	out := make([]byte, 16)
	copy(out, id[:])
	return out, nil
}

func (uuidPacker) Unpack(data []byte) (any, []byte, error) {
	if len(data) < 16 {
		return nil, nil, ErrShortBuffer
	}
	var id uuid.UUID
	copy(id[:], data[:16])
	return id, data[16:], nil
}

func (uuidPacker) ParseText(s string) (any, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}
	return id, nil
}
