package command

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/loginlink/pkg/auth"
	"github.com/dmitrymomot/loginlink/pkg/token"
)

var errTokenArgument = errors.New("expected exactly one TOKEN argument")

// userFlags describe a user's state on the command line.
func userFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "pk",
			Usage:    "primary key, parsed with the configured packer",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "email",
			Usage: "email address",
		},
		&cli.StringFlag{
			Name:  "password-hash",
			Usage: "stored password hash; empty means no password",
		},
		&cli.StringFlag{
			Name:  "last-login",
			Usage: "last login time, RFC 3339",
		},
		&cli.StringFlag{
			Name:  "scope",
			Usage: "token scope",
		},
	}
}

func userFromFlags(c *cli.Context, p *token.Protocol) (*auth.User, error) {
	pk, err := parsePrimaryKey(p, c.String("pk"))
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:           pk,
		Email:        c.String("email"),
		PasswordHash: c.String("password-hash"),
		IsActive:     true,
	}
	if s := c.String("last-login"); s != "" {
		last, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("invalid --last-login: %w", err)
		}
		user.LastLoginAt = &last
	}
	return user, nil
}

// CreateCommand mints a token for a user described by flags.
func CreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a token for a user described by flags",
		Flags: userFlags(),
		Action: func(c *cli.Context) error {
			p, err := newProtocol(c)
			if err != nil {
				return err
			}
			user, err := userFromFlags(c, p)
			if err != nil {
				return err
			}

			tok, err := p.Create(user, c.String("scope"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, tok)
			return nil
		},
	}
}

// InspectCommand decodes a token without verifying it.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode a token without verifying it",
		ArgsUsage: "TOKEN",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errTokenArgument
			}
			p, err := newProtocol(c)
			if err != nil {
				return err
			}

			in, err := p.Inspect(c.Args().First())
			if err != nil {
				return err
			}

			w := c.App.Writer
			fmt.Fprintf(w, "primary key: %v\n", in.PrimaryKey)
			if in.HasTimestamp {
				fmt.Fprintf(w, "issued at:   %s\n", in.IssuedAt.Format(time.RFC3339))
				fmt.Fprintf(w, "age:         %s\n", in.Age)
			} else {
				fmt.Fprintln(w, "issued at:   (no timestamp)")
			}
			fmt.Fprintf(w, "signature:   %s\n", hex.EncodeToString(in.Signature))
			return nil
		},
	}
}

// VerifyCommand checks a token against a user described by flags and prints
// why it is rejected.
func VerifyCommand() *cli.Command {
	flags := append(userFlags(), &cli.DurationFlag{
		Name:  "max-age",
		Usage: "override the configured max age for this check",
	})

	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify a token against a user described by flags",
		ArgsUsage: "TOKEN",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errTokenArgument
			}
			p, err := newProtocol(c)
			if err != nil {
				return err
			}
			user, err := userFromFlags(c, p)
			if err != nil {
				return err
			}

			lookup := token.LookupFunc(func(_ context.Context, pk any) (token.User, error) {
				if !reflect.DeepEqual(pk, user.ID) {
					return nil, nil
				}
				return user, nil
			})

			opts := []token.ParseOption{token.WithScope(c.String("scope"))}
			if c.IsSet("max-age") {
				opts = append(opts, token.WithMaxAge(c.Duration("max-age")))
			}

			if _, err := p.Verify(c.Context, c.Args().First(), lookup, opts...); err != nil {
				return fmt.Errorf("token rejected: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "valid token for %v\n", user.ID)
			return nil
		},
	}
}
