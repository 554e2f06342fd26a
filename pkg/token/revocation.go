package token

import (
	"fmt"
	"strings"
	"time"
)

// HashSizes maps password hasher tags (the text before the first "$") to the
// number of trailing characters holding the salt and hash. Only that tail
// feeds the revocation key, so hasher parameters never leave the server
// inside derived data. Unknown tags use the whole stored value.
var HashSizes = map[string]int{
	"pbkdf2_sha256": 44,
	"pbkdf2_sha1":   28,
	"argon2":        22,
	"bcrypt_sha256": 31,
	"bcrypt":        31,
	"sha1":          40,
	"md5":           32,
	"crypt":         11,
}

// RevocationKey derives the bytes that tie a token to the user's current
// state. It is never transmitted; both sides recompute it.
//
// Contributions are concatenated without separators, in this order:
// password hash tail, email, last login. Two different states may therefore
// yield the same bytes; the layout is kept for compatibility with issued
// tokens.
func RevocationKey(user User, cfg Config) []byte {
	var b strings.Builder

	if cfg.InvalidateOnPasswordChange {
		if hash, ok := user.GetPasswordHash(); ok {
			b.WriteString(passwordTail(hash))
		}
	}

	if cfg.InvalidateOnEmailChange {
		b.WriteString(user.GetEmail())
	}

	if cfg.OneTime {
		if last, ok := user.GetLastLogin(); ok {
			b.WriteString(isoformat(last))
		}
	}

	return []byte(b.String())
}

func passwordTail(hash string) string {
	algorithm, _, _ := strings.Cut(hash, "$")
	size, ok := HashSizes[algorithm]
	if !ok {
		return hash
	}
	r := []rune(hash)
	if len(r) > size {
		r = r[len(r)-size:]
	}
	return string(r)
}

// isoformat renders t as YYYY-MM-DDTHH:MM:SS[.ffffff]+HH:MM. Sub-microsecond
// precision is dropped and the fraction is omitted when it is zero.
func isoformat(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s + t.Format("-07:00")
}
