package token_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loginlink/pkg/token"
)

// prefixed is a stand-in legacy format with a distinguishable shape.
type prefixed struct{ inner *token.Protocol }

func (f prefixed) Create(user token.User, scope string) (string, error) {
	tok, err := f.inner.Create(user, scope)
	return "v1." + tok, err
}

func (f prefixed) Parse(ctx context.Context, tok string, lookup token.UserLookup, opts ...token.ParseOption) token.User {
	return f.inner.Parse(ctx, strings.TrimPrefix(tok, "v1."), lookup, opts...)
}

func (f prefixed) Detect(tok string) bool { return strings.HasPrefix(tok, "v1.") }

func TestFormats(t *testing.T) {
	t.Parallel()

	clock := newClock()
	current := newProtocol(t, clock)
	legacy := prefixed{inner: newProtocol(t, clock, func(c *token.Config) { c.SigningKey = "legacy-key" })}

	user := newUser()
	users := newLookup(user)
	formats := token.Formats{current, legacy}

	tok, err := formats.Create(user, "")
	require.NoError(t, err)
	assert.True(t, current.Detect(tok))
	assert.Same(t, user, formats.Parse(context.Background(), tok, users))

	old, err := legacy.Create(user, "")
	require.NoError(t, err)
	assert.True(t, formats.Detect(old))
	assert.Nil(t, current.Parse(context.Background(), old, users))
	assert.Same(t, user, formats.Parse(context.Background(), old, users))

	assert.False(t, formats.Detect("!"))
	assert.Nil(t, formats.Parse(context.Background(), "!", users))
}

func TestFormats_Empty(t *testing.T) {
	t.Parallel()

	var formats token.Formats
	_, err := formats.Create(newUser(), "")
	assert.ErrorIs(t, err, token.ErrNoFormats)
	assert.False(t, formats.Detect("abcd"))
	assert.Nil(t, formats.Parse(context.Background(), "abcd", newLookup()))
}
