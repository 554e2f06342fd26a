package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/loginlink/pkg/keys"
)

// KeygenCommand prints a random signing key.
func KeygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a random signing key",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "bytes",
				Usage: "key size in bytes",
				Value: keys.DefaultSize,
			},
		},
		Action: func(c *cli.Context) error {
			key, err := keys.Generate(c.Int("bytes"))
			if err != nil {
				return err
			}
			defer keys.Clear(key)

			fmt.Fprintln(c.App.Writer, keys.Encode(key))
			return nil
		},
	}
}

// DeriveCommand prints a sub-key derived from a master secret.
func DeriveCommand() *cli.Command {
	return &cli.Command{
		Name:  "derive",
		Usage: "Derive a signing key from a master secret",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "master",
				Usage:    "master secret (raw, base64: or hex:)",
				EnvVars:  []string{"LOGINLINK_MASTER_KEY"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "label",
				Usage:    "purpose label, e.g. login-links-2024",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "bytes",
				Usage: "key size in bytes",
				Value: keys.DefaultSize,
			},
		},
		Action: func(c *cli.Context) error {
			master, err := keys.Parse(c.String("master"))
			if err != nil {
				return err
			}
			defer keys.Clear(master)

			key, err := keys.Derive(master, c.String("label"), c.Int("bytes"))
			if err != nil {
				return err
			}
			defer keys.Clear(key)

			fmt.Fprintln(c.App.Writer, keys.Encode(key))
			return nil
		},
	}
}
