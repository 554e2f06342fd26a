package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/loginlink/pkg/auth"
)

// MockStorage is a mock implementation of auth.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUserByID(ctx context.Context, id any) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockStorage) UpdateLastLogin(ctx context.Context, id any, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockReplayGuard is a mock implementation of auth.ReplayGuard.
type MockReplayGuard struct {
	mock.Mock
}

func (m *MockReplayGuard) ConsumeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

// memoryGuard remembers consumed ids in a set.
type memoryGuard struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{used: make(map[string]struct{})}
}

func (g *memoryGuard) ConsumeToken(_ context.Context, tokenID string, _ time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.used[tokenID]; ok {
		return auth.ErrTokenAlreadyUsed
	}
	g.used[tokenID] = struct{}{}
	return nil
}
