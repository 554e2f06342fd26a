package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// pinger is satisfied by every go-redis client.
type pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Healthcheck reports whether the replay store answers PING. The loginlink
// health command runs it next to the PostgreSQL check.
func Healthcheck(client pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
