package packer

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Fixed-width big-endian integer packers.
var (
	Int16  Packer = intPacker{size: 2, signed: true}
	Uint16 Packer = intPacker{size: 2}
	Int32  Packer = intPacker{size: 4, signed: true}
	Uint32 Packer = intPacker{size: 4}
	Int64  Packer = intPacker{size: 8, signed: true}
	Uint64 Packer = intPacker{size: 8}
)

type intPacker struct {
	size   int
	signed bool
}

func (p intPacker) String() string {
	if p.signed {
		return fmt.Sprintf("int%d", p.size*8)
	}
	return fmt.Sprintf("uint%d", p.size*8)
}

func (p intPacker) Pack(pk any) ([]byte, error) {
	var raw uint64
	if p.signed {
		v, err := toInt64(pk)
		if err != nil {
			return nil, err
		}
		bitsize := uint(p.size * 8)
		if bitsize < 64 {
			limit := int64(1) << (bitsize - 1)
			if v < -limit || v >= limit {
				return nil, fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, p)
			}
		}
		raw = uint64(v)
	} else {
		v, err := toUint64(pk)
		if err != nil {
			return nil, err
		}
		if p.size < 8 && v >= uint64(1)<<(p.size*8) {
			return nil, fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, p)
		}
		raw = v
	}

	buf := make([]byte, p.size)
	switch p.size {
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(raw))
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(raw))
	default:
		binary.BigEndian.PutUint64(buf, raw)
	}
	return buf, nil
}

func (p intPacker) Unpack(data []byte) (any, []byte, error) {
	if len(data) < p.size {
		return nil, nil, ErrShortBuffer
	}

	head, rest := data[:p.size], data[p.size:]
	switch p.size {
	case 2:
		v := binary.BigEndian.Uint16(head)
		if p.signed {
			return int64(int16(v)), rest, nil
		}
		return uint64(v), rest, nil
	case 4:
		v := binary.BigEndian.Uint32(head)
		if p.signed {
			return int64(int32(v)), rest, nil
		}
		return uint64(v), rest, nil
	default:
		v := binary.BigEndian.Uint64(head)
		if p.signed {
			return int64(v), rest, nil
		}
		return v, rest, nil
	}
}

func (p intPacker) ParseText(s string) (any, error) {
	if p.signed {
		v, err := strconv.ParseInt(s, 10, p.size*8)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
		}
		return v, nil
	}
	v, err := strconv.ParseUint(s, 10, p.size*8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}
	return v, nil
}

func toInt64(pk any) (int64, error) {
	switch v := pk.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedType, pk)
	}
}

func toUint64(pk any) (uint64, error) {
	switch v := pk.(type) {
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case int, int8, int16, int32, int64:
		s, _ := toInt64(v)
		if s < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrOutOfRange, s)
		}
		return uint64(s), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedType, pk)
	}
}
