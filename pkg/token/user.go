package token

import (
	"context"
	"reflect"
	"time"
)

// User is the account state a token is bound to. The getters are read at
// creation and again at every verification; any change in what they return
// (per the Invalidate* and OneTime settings) revokes outstanding tokens.
type User interface {
	GetPrimaryKey() any
	// GetPasswordHash returns the stored password hash, or false when the
	// account has none.
	GetPasswordHash() (string, bool)
	GetEmail() string
	// GetLastLogin returns the last successful login, or false if the user
	// never logged in.
	GetLastLogin() (time.Time, bool)
}

// UserLookup resolves a primary key decoded from a token. Implementations
// must apply their own eligibility rules (for example rejecting disabled
// accounts) and return a nil User when the key does not resolve.
type UserLookup interface {
	LookupUser(ctx context.Context, pk any) (User, error)
}

// LookupFunc adapts a function to UserLookup.
type LookupFunc func(ctx context.Context, pk any) (User, error)

func (f LookupFunc) LookupUser(ctx context.Context, pk any) (User, error) {
	return f(ctx, pk)
}

// isNilUser also catches typed nil pointers wrapped in the interface.
func isNilUser(u User) bool {
	if u == nil {
		return true
	}
	v := reflect.ValueOf(u)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return v.IsNil()
	}
	return false
}
