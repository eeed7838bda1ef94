// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/kvstore"
	"taskflow/internal/session"
	"taskflow/internal/tasks"
)

// StoreFactory opens the key-value store for cfg.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (kvstore.Store, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry    *commands.Registry
	factory     StoreFactory
	sessionOpts []session.Option
	taskOpts    []tasks.Option
	prompt      commands.PasswordPrompt
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSessionOptions appends options to every session.Manager the
// dispatcher creates. They are applied after the config-derived ones.
func WithSessionOptions(opts ...session.Option) Option {
	return func(d *Dispatcher) { d.sessionOpts = append(d.sessionOpts, opts...) }
}

// WithTaskOptions appends options to every tasks.Repository the
// dispatcher opens.
func WithTaskOptions(opts ...tasks.Option) Option {
	return func(d *Dispatcher) { d.taskOpts = append(d.taskOpts, opts...) }
}

// WithPrompt sets the password prompt used by login and signup.
func WithPrompt(p commands.PasswordPrompt) Option {
	return func(d *Dispatcher) { d.prompt = p }
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		factory:  factory,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVarP(&quiet, "quiet", "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage:\n  %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.Logger = config.NewLogger(errOut, debug)

	store, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
	defer func() {
		if err := store.Close(); err != nil {
			cfg.Log().Warn("closing store", "err", err)
		}
	}()

	sessionOpts := append([]session.Option{
		session.WithDelay(cfg.AuthDelay),
		session.WithLogger(cfg.Log()),
	}, d.sessionOpts...)
	accounts := session.New(store, sessionOpts...)

	sess, err := accounts.Restore(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	env := &commands.Env{
		Accounts: accounts,
		Session:  sess,
		Prompt:   d.prompt,
	}

	if cmd.NeedsAuth() {
		if sess == nil {
			fmt.Fprintln(errOut, "error: not logged in (run: taskflow login)")
			return exitcode.AuthError
		}
		taskOpts := append([]tasks.Option{tasks.WithLogger(cfg.Log())}, d.taskOpts...)
		repo, err := tasks.Open(ctx, store, sess, taskOpts...)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.StorageError
		}
		env.Tasks = repo
	}

	cfg.Log().Debug("dispatch", "command", cmd.Name(), "store", cfg.Store)
	return cmd.Run(ctx, cfg, env, fs.Args(), out, errOut)
}
