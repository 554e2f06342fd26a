package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/loginlink/pkg/auth"
)

// ReplayGuard records consumed tokens with SET NX so that concurrent
// attempts to use the same token race on a single key and only one wins.
type ReplayGuard struct {
	client redis.UniversalClient
	prefix string
}

var _ auth.ReplayGuard = (*ReplayGuard)(nil)

// NewReplayGuard stores records under prefix + token id.
func NewReplayGuard(client redis.UniversalClient, prefix string) *ReplayGuard {
	return &ReplayGuard{client: client, prefix: prefix}
}

// ConsumeToken implements auth.ReplayGuard. The record expires after ttl,
// which should be at least the token lifetime.
func (g *ReplayGuard) ConsumeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	ok, err := g.client.SetNX(ctx, g.prefix+tokenID, 1, ttl).Result()
	if err != nil {
		return errors.Join(ErrReplayGuardFailed, err)
	}
	if !ok {
		return auth.ErrTokenAlreadyUsed
	}
	return nil
}
