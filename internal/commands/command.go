// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/service"
)

// PasswordPrompt asks the user for a password.
type PasswordPrompt func(prompt string) (string, error)

// Env carries the state a command acts on.
type Env struct {
	// Accounts manages accounts and the active session. Always set.
	Accounts service.Accounts

	// Session is the active session at dispatch time, or nil.
	Session *service.Session

	// Tasks is the signed-in user's task repository.
	// Nil unless the command NeedsAuth.
	Tasks service.Service

	// Prompt reads a password when none was given on the command line.
	// Nil means prompting is unavailable.
	Prompt PasswordPrompt
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a signed-in user.
	// Commands like help, version, signup, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, logger).
	// env.Tasks is nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int
}
