package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// hasStdinInput checks if data is available from stdin (pipe or redirect)
func hasStdinInput() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
