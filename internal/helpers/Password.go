package helpers

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var ERROR_NOT_TERMINAL = errors.New("stdin is not a terminal")

// ReadPassword prompts on stdout and reads without echo.
func ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return "", ERROR_NOT_TERMINAL
	}

	fmt.Print(prompt)
	password, err := term.ReadPassword(fd)
	fmt.Println()

	return string(password), err
}
