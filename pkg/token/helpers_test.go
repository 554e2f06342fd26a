package token_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loginlink/pkg/token"
)

const (
	testSigningKey = "signing-key-for-tests"
	bcryptHash     = "bcrypt$$2b$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
)

type testUser struct {
	ID          any
	Password    string
	HasPassword bool
	Email       string
	LastLoginAt time.Time
}

func (u *testUser) GetPrimaryKey() any { return u.ID }

func (u *testUser) GetPasswordHash() (string, bool) { return u.Password, u.HasPassword }

func (u *testUser) GetEmail() string { return u.Email }

func (u *testUser) GetLastLogin() (time.Time, bool) {
	return u.LastLoginAt, !u.LastLoginAt.IsZero()
}

func newUser() *testUser {
	return &testUser{
		ID:          int64(42),
		Password:    bcryptHash,
		HasPassword: true,
		Email:       "alice@example.com",
	}
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// lookup resolves users by primary key and counts calls.
type lookup struct {
	users map[any]token.User
	calls atomic.Int32
}

func newLookup(users ...*testUser) *lookup {
	l := &lookup{users: make(map[any]token.User)}
	for _, u := range users {
		l.users[u.ID] = u
	}
	return l
}

func (l *lookup) LookupUser(_ context.Context, pk any) (token.User, error) {
	l.calls.Add(1)
	u, ok := l.users[pk]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func testConfig(mutate ...func(*token.Config)) token.Config {
	cfg := token.DefaultConfig()
	cfg.SigningKey = testSigningKey
	for _, m := range mutate {
		m(&cfg)
	}
	return cfg
}

func newProtocol(t *testing.T, clock *testClock, mutate ...func(*token.Config)) *token.Protocol {
	t.Helper()
	p, err := token.New(testConfig(mutate...), token.WithClock(clock.Now))
	require.NoError(t, err)
	return p
}

func withMaxAge(d time.Duration) func(*token.Config) {
	return func(c *token.Config) { c.MaxAge = d }
}
