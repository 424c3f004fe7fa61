// Command calc is a keypad calculator for the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/calc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
