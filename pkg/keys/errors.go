package keys

import "errors"

var (
	ErrEmptyKey            = errors.New("keys: key is empty")
	ErrInvalidKeySize      = errors.New("keys: key size must be between 1 and 64 bytes")
	ErrMalformedKey        = errors.New("keys: cannot decode key")
	ErrKeyDerivationFailed = errors.New("keys: key derivation failed")
	ErrKeyGenerationFailed = errors.New("keys: key generation failed")
)
