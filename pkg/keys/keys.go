package keys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// DefaultSize is the size of generated and derived keys.
	DefaultSize = 32
	// MaxSize is the largest key the token MAC accepts.
	MaxSize = 64

	base64Prefix = "base64:"
	hexPrefix    = "hex:"

	// deriveSalt binds derived keys to this package so the same master
	// secret used elsewhere with HKDF yields unrelated output.
	deriveSalt = "loginlink.keys.v1"
)

// Generate returns size random bytes.
func Generate(size int) ([]byte, error) {
	if size < 1 || size > MaxSize {
		return nil, ErrInvalidKeySize
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrKeyGenerationFailed, err)
	}
	return key, nil
}

// Encode renders key in the base64 form understood by Parse.
func Encode(key []byte) string {
	return base64Prefix + base64.StdEncoding.EncodeToString(key)
}

// Parse decodes a key read from configuration.
func Parse(s string) ([]byte, error) {
	switch {
	case s == "":
		return nil, ErrEmptyKey
	case strings.HasPrefix(s, base64Prefix):
		enc := strings.TrimPrefix(s, base64Prefix)
		key, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			// Accept URL-safe output of other tools as well.
			key, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(enc, "="))
		}
		if err != nil {
			return nil, errors.Join(ErrMalformedKey, err)
		}
		if len(key) == 0 {
			return nil, ErrEmptyKey
		}
		return key, nil
	case strings.HasPrefix(s, hexPrefix):
		key, err := hex.DecodeString(strings.TrimPrefix(s, hexPrefix))
		if err != nil {
			return nil, errors.Join(ErrMalformedKey, err)
		}
		if len(key) == 0 {
			return nil, ErrEmptyKey
		}
		return key, nil
	default:
		return []byte(s), nil
	}
}

// Derive expands master into a size-byte key bound to label using
// HKDF-SHA256. Distinct labels give independent keys.
func Derive(master []byte, label string, size int) ([]byte, error) {
	if len(master) == 0 {
		return nil, ErrEmptyKey
	}
	if size < 1 || size > MaxSize {
		return nil, ErrInvalidKeySize
	}

	r := hkdf.New(sha256.New, master, []byte(deriveSalt), []byte(label))
	key := make([]byte, size)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// Clear zeroes b in place.
func Clear(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
