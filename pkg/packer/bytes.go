package packer

import (
	"fmt"
	"unicode/utf8"
)

// Length-prefixed packers. The prefix is a single byte holding the payload
// length.
var (
	Bytes  Packer = bytesPacker{}
	String Packer = stringPacker{}
)

const maxPrefixed = 255

type bytesPacker struct{}

func (bytesPacker) Pack(pk any) ([]byte, error) {
	var b []byte
	switch v := pk.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, pk)
	}
	return prefixed(b)
}

func (bytesPacker) Unpack(data []byte) (any, []byte, error) {
	payload, rest, err := unprefixed(data)
	if err != nil {
		return nil, nil, err
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, rest, nil
}

func (bytesPacker) ParseText(s string) (any, error) {
	return []byte(s), nil
}

type stringPacker struct{}

func (stringPacker) Pack(pk any) ([]byte, error) {
	var s string
	switch v := pk.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, pk)
	}
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}
	return prefixed([]byte(s))
}

func (stringPacker) Unpack(data []byte) (any, []byte, error) {
	payload, rest, err := unprefixed(data)
	if err != nil {
		return nil, nil, err
	}
	if !utf8.Valid(payload) {
		return nil, nil, ErrInvalidUTF8
	}
	return string(payload), rest, nil
}

func (stringPacker) ParseText(s string) (any, error) {
	return s, nil
}

func prefixed(b []byte) ([]byte, error) {
	if len(b) > maxPrefixed {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLong, len(b))
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, byte(len(b)))
	return append(out, b...), nil
}

func unprefixed(data []byte) ([]byte, []byte, error) {
	if len(data) < 1 {
		return nil, nil, ErrShortBuffer
	}
	n := int(data[0])
	if len(data) < 1+n {
		return nil, nil, ErrShortBuffer
	}
	return data[1 : 1+n], data[1+n:], nil
}
