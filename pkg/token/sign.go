package token

import (
	"crypto/subtle"

	"github.com/dmitrymomot/loginlink/pkg/keyedhash"
)

// Personalization is the BLAKE2b domain-separation label for this token
// format. Changing it invalidates every issued token.
const Personalization = "sesame.tokens_v2"

// Sign computes a size-byte keyed BLAKE2b MAC of data.
func Sign(data, key []byte, size int) ([]byte, error) {
	return keyedhash.Sum(data, key, []byte(Personalization), size)
}

// verifySignature recomputes the MAC under each key in order and compares in
// constant time. It stops at the first match.
func verifySignature(data, signature []byte, verificationKeys [][]byte) bool {
	for _, key := range verificationKeys {
		expected, err := Sign(data, key, len(signature))
		if err != nil {
			continue
		}
		if subtle.ConstantTimeCompare(signature, expected) == 1 {
			return true
		}
	}
	return false
}
