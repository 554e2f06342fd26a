// Package pg provides the PostgreSQL side of the login backend on the
// pgx/v5 driver: connection pooling with retries, goose migrations, a health
// check and UserStore, an auth.Storage implementation.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	// Applies the embedded users table migration unless
//	// PG_MIGRATIONS_PATH points elsewhere.
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
//
//	store, err := pg.NewUserStore(pool, cfg.UsersTable)
//	if err != nil {
//		return err
//	}
//	svc := auth.NewService(store, protocol)
//
// # Identifiers
//
// UserStore returns integer ids as int64 and uuid ids as uuid.UUID, the
// types the token packers decode to, so the same value round-trips through
// a token and back into a query.
//
// # Error Handling
//
// Missing rows map to auth.ErrUserNotFound. Driver failures are joined with
// ErrQueryFailed; IsNotFoundError classifies raw pgx errors.
package pg
