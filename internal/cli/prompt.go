package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// TerminalPrompt reads a password from the terminal with echo disabled.
// It fails when stdin is not a terminal; pass --password instead.
func TerminalPrompt(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available for password prompt (use --password)")
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
