package token

import (
	"encoding/base64"
	"regexp"
	"strings"
)

var strictEncoding = base64.RawURLEncoding.Strict()

// Encode renders token bytes as URL-safe base64 without padding.
func Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. Standard padding is tolerated; anything else that
// Encode would not produce for the same bytes, such as extra padding or
// non-zero trailing bits, is rejected.
func Decode(s string) ([]byte, error) {
	body := strings.TrimRight(s, "=")
	if pad := len(s) - len(body); pad > 0 && pad != (4-len(body)%4)%4 {
		return nil, base64.CorruptInputError(len(body))
	}
	if !alphabetRe.MatchString(body) {
		return nil, base64.CorruptInputError(0)
	}
	return strictEncoding.DecodeString(body)
}

var alphabetRe = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// The shortest sensible token is a 1-byte key and a 2-byte signature, which
// is 4 characters once encoded.
var tokenRe = regexp.MustCompile(`^[A-Za-z0-9_-]{4,}$`)

// Detect reports whether s could be a token of this format. It only checks
// the alphabet and length; it says nothing about validity.
func Detect(s string) bool {
	return tokenRe.MatchString(s)
}
