package command

import (
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/loginlink/pkg/auth"
	"github.com/dmitrymomot/loginlink/pkg/config"
	"github.com/dmitrymomot/loginlink/pkg/pg"
	"github.com/dmitrymomot/loginlink/pkg/redis"
	"github.com/dmitrymomot/loginlink/pkg/token"
)

// MigrateCommand applies the users table migrations.
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations (PG_* variables)",
		Action: func(c *cli.Context) error {
			var cfg pg.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			pool, err := pg.Connect(c.Context, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := pg.Migrate(c.Context, pool, cfg, getLogger(c)); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "migrations applied")
			return nil
		},
	}
}

// LinkCommand issues a login link for a stored user.
func LinkCommand() *cli.Command {
	return &cli.Command{
		Name:  "link",
		Usage: "Issue a login link for a stored user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user-id", Usage: "primary key of the user", Required: true},
			&cli.StringFlag{Name: "base-url", Usage: "absolute URL of the login endpoint", Required: true},
			&cli.StringFlag{Name: "scope", Usage: "token scope"},
		},
		Action: func(c *cli.Context) error {
			svc, cleanup, err := newService(c, false)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := parsePrimaryKey(svc.Protocol(), c.String("user-id"))
			if err != nil {
				return err
			}
			link, err := svc.IssueLink(c.Context, id, c.String("scope"), c.String("base-url"))
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, link.URL)
			if !link.ExpiresAt.IsZero() {
				fmt.Fprintf(c.App.ErrWriter, "expires at %s\n", link.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

// LoginCommand authenticates a token against the database.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Authenticate a token against stored users",
		ArgsUsage: "TOKEN",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scope", Usage: "token scope"},
			&cli.BoolFlag{Name: "single-use", Usage: "record the token in Redis (REDIS_* variables) and reject reuse"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errTokenArgument
			}
			svc, cleanup, err := newService(c, c.Bool("single-use"))
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := svc.Authenticate(c.Context, c.Args().First(), token.WithScope(c.String("scope")))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "authenticated %v <%s>\n", user.ID, user.Email)
			return nil
		},
	}
}

// HealthCommand checks database and Redis connectivity.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check PostgreSQL and Redis connectivity",
		Action: func(c *cli.Context) error {
			var pgCfg pg.Config
			if err := config.Load(&pgCfg); err != nil {
				return err
			}
			pool, err := pg.Connect(c.Context, pgCfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			var redisCfg redis.Config
			if err := config.Load(&redisCfg); err != nil {
				return err
			}
			client, err := redis.Connect(c.Context, redisCfg)
			if err != nil {
				return err
			}
			defer client.Close()

			return errors.Join(
				report(c, "postgres", pg.Healthcheck(pool)(c.Context)),
				report(c, "redis", redis.Healthcheck(client)(c.Context)),
			)
		},
	}
}

func report(c *cli.Context, name string, err error) error {
	if err != nil {
		fmt.Fprintf(c.App.Writer, "%-9s FAIL %v\n", name, err)
		return err
	}
	fmt.Fprintf(c.App.Writer, "%-9s ok\n", name)
	return nil
}

// newService wires the login backend from the environment. The returned
// cleanup closes every connection it opened.
func newService(c *cli.Context, singleUse bool) (*auth.Service, func(), error) {
	log := getLogger(c)

	p, err := newProtocol(c)
	if err != nil {
		return nil, nil, err
	}

	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, nil, err
	}
	pool, err := pg.Connect(c.Context, pgCfg)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){pool.Close}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, err := pg.NewUserStore(pool, pgCfg.UsersTable)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts := []auth.Option{auth.WithLogger(log)}
	if singleUse {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			cleanup()
			return nil, nil, err
		}
		client, err := redis.Connect(c.Context, redisCfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { closeRedis(client) })
		opts = append(opts, auth.WithReplayGuard(redis.NewReplayGuard(client, redisCfg.ReplayKeyPrefix)))
	}

	return auth.NewService(store, p, opts...), cleanup, nil
}

func closeRedis(client *goredis.Client) {
	_ = client.Close()
}
