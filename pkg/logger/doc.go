// Package logger builds *slog.Logger instances through functional options and
// provides attribute constructors so that token diagnostics use the same keys
// everywhere.
//
// Token verification failures are reported only through these logs, never to
// the token holder, so the attribute set is geared towards explaining why a
// token was rejected: Reason, Scope, PrimaryKey and Age.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "loginlink"),
//	    logger.WithLevel(slog.LevelDebug),
//	)
//	proto, err := token.New(cfg, token.WithLogger(log))
//
// Libraries that accept an optional logger default to Discard so that nothing
// is written unless the application opts in.
//
// # Configuration
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter select the handler.
//   - WithLevel sets the minimum level.
//   - WithOutput redirects output (stdout by default).
//   - WithAttr attaches static attributes.
//   - WithDevelopment / WithProduction / WithEnvironment apply presets.
package logger
