package token

import "context"

// Format is a token scheme. Protocol implements it.
type Format interface {
	Create(user User, scope string) (string, error)
	Parse(ctx context.Context, token string, lookup UserLookup, opts ...ParseOption) User
	Detect(token string) bool
}

// Formats lets several token schemes coexist while migrating from one to
// another. New tokens use the first format; parsing tries, in order, each
// format whose Detect accepts the token.
type Formats []Format

var _ Format = Formats(nil)
var _ Format = (*Protocol)(nil)

func (fs Formats) Create(user User, scope string) (string, error) {
	if len(fs) == 0 {
		return "", ErrNoFormats
	}
	return fs[0].Create(user, scope)
}

func (fs Formats) Parse(ctx context.Context, token string, lookup UserLookup, opts ...ParseOption) User {
	for _, f := range fs {
		if !f.Detect(token) {
			continue
		}
		if user := f.Parse(ctx, token, lookup, opts...); user != nil {
			return user
		}
	}
	return nil
}

func (fs Formats) Detect(token string) bool {
	for _, f := range fs {
		if f.Detect(token) {
			return true
		}
	}
	return false
}
