// Package redis connects to Redis with go-redis/v9 and provides
// ReplayGuard, a store of consumed login tokens for auth.Service.
//
// Usage:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	svc := auth.NewService(store, protocol,
//		auth.WithReplayGuard(redis.NewReplayGuard(client, cfg.ReplayKeyPrefix)),
//	)
//
// Records are keyed by auth.TokenID, a hash of the token, so tokens never
// reach Redis in clear.
package redis
