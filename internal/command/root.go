// Package command defines the loginlink CLI on urfave/cli/v2.
package command

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/loginlink/pkg/config"
	"github.com/dmitrymomot/loginlink/pkg/logger"
	"github.com/dmitrymomot/loginlink/pkg/packer"
	"github.com/dmitrymomot/loginlink/pkg/token"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const loggerKey = "logger"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "loginlink",
		Usage:   "Stateless login tokens",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			KeygenCommand(),
			DeriveCommand(),
			CreateCommand(),
			InspectCommand(),
			VerifyCommand(),
			MigrateCommand(),
			LinkCommand(),
			LoginCommand(),
			HealthCommand(),
		},
		Before: before,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML token configuration; environment variables override it",
			EnvVars: []string{"LOGINLINK_CONFIG"},
		},
		&cli.StringSliceFlag{
			Name:  "env-file",
			Usage: "load variables from `FILE` before reading configuration (repeatable)",
		},
		&cli.StringFlag{
			Name:    "env",
			Usage:   "logging preset: development (text, debug) or production (json, info)",
			EnvVars: []string{"APP_ENV"},
			Value:   logger.EnvProduction,
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error; overrides the preset",
			EnvVars: []string{"LOGINLINK_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "text or json; overrides the preset",
			EnvVars: []string{"LOGINLINK_LOG_FORMAT"},
		},
	}
}

func before(c *cli.Context) error {
	if files := c.StringSlice("env-file"); len(files) > 0 {
		if err := config.LoadEnv(files...); err != nil {
			return err
		}
	}

	opts := []logger.Option{
		logger.WithEnvironment(c.String("env"), c.App.Name),
		logger.WithOutput(c.App.ErrWriter),
	}
	if s := c.String("log-level"); s != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if s := c.String("log-format"); s != "" {
		format := logger.Format(s)
		if format != logger.FormatText && format != logger.FormatJSON {
			return fmt.Errorf("invalid log format %q", format)
		}
		opts = append(opts, logger.WithFormat(format))
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[loggerKey] = logger.New(opts...)
	return nil
}

// getLogger retrieves the logger built in before.
func getLogger(c *cli.Context) *slog.Logger {
	if log, ok := c.App.Metadata[loggerKey].(*slog.Logger); ok {
		return log
	}
	return logger.Discard()
}

func loadTokenConfig(c *cli.Context) (token.Config, error) {
	cfg := token.DefaultConfig()
	if path := c.String("config"); path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	} else if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func newProtocol(c *cli.Context) (*token.Protocol, error) {
	cfg, err := loadTokenConfig(c)
	if err != nil {
		return nil, err
	}
	return token.New(cfg, token.WithLogger(getLogger(c)))
}

// parsePrimaryKey reads a primary key typed on the command line with the
// configured packer.
func parsePrimaryKey(p *token.Protocol, s string) (any, error) {
	pk, err := packer.ByName(p.Config().Packer)
	if err != nil {
		return nil, err
	}
	return packer.ParseText(pk, s)
}
