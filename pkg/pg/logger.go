package pg

import "context"

// migrationLogger receives goose output during Migrate. *slog.Logger
// satisfies it.
type migrationLogger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
