package keyedhash

import "errors"

var (
	ErrInvalidSize   = errors.New("keyedhash: digest size must be between 1 and 64 bytes")
	ErrKeyTooLong    = errors.New("keyedhash: key must not exceed 64 bytes")
	ErrPersonTooLong = errors.New("keyedhash: personalization must not exceed 16 bytes")
)
