package helpers

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// PrintAndExit writes err to stderr and ends the process with code.
func PrintAndExit(err error, code int) {
	if err == nil {
		os.Exit(code)
	}

	fmt.Fprintln(os.Stderr, color.RedString("error: %s", err.Error()))

	os.Exit(code)
}
