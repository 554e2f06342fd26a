// Command loginlink issues, inspects and verifies login tokens and runs the
// login backend's maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/loginlink/internal/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
