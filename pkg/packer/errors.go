package packer

import "errors"

var (
	ErrUnsupportedType = errors.New("packer: unsupported primary key type")
	ErrOutOfRange      = errors.New("packer: primary key out of range")
	ErrShortBuffer     = errors.New("packer: not enough bytes to unpack primary key")
	ErrTooLong         = errors.New("packer: primary key longer than 255 bytes")
	ErrInvalidUTF8     = errors.New("packer: primary key is not valid UTF-8")
	ErrUnknownPacker   = errors.New("packer: unknown packer name")
	ErrInvalidText     = errors.New("packer: cannot parse primary key from text")
)
