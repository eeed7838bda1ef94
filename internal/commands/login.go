package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/view"
)

func init() {
	Register(&LoginCmd{})
	Register(&SignupCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

// SetCredentials sets the email and password (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return []string{"signin"} }
func (c *LoginCmd) Synopsis() string  { return "Sign in to your account" }
func (c *LoginCmd) Usage() string {
	return "taskflow login --email <email> [--password <password>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.email, "email", "e", "", "")
	fs.StringVarP(&c.password, "password", "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	form := view.AuthForm{Mode: view.ModeLogin, Email: c.email, Password: c.password}
	return runAuth(ctx, cfg, env, form, out, errOut)
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	name     string
	email    string
	password string
}

// SetAccount sets the name, email and password (for testing).
func (c *SignupCmd) SetAccount(name, email, password string) {
	c.name = name
	c.email = email
	c.password = password
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *SignupCmd) Usage() string {
	return "taskflow signup --name <name> --email <email> [--password <password>]"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.name, "name", "n", "", "")
	fs.StringVarP(&c.email, "email", "e", "", "")
	fs.StringVarP(&c.password, "password", "p", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	form := view.AuthForm{Mode: view.ModeSignup, Name: c.name, Email: c.email, Password: c.password}
	return runAuth(ctx, cfg, env, form, out, errOut)
}

// runAuth is the shared implementation for login and signup.
func runAuth(ctx context.Context, cfg *config.Config, env *Env, form view.AuthForm, out, errOut io.Writer) int {
	// Prompt for the password only once the other fields are in.
	if form.Password == "" && form.Email != "" && env.Prompt != nil &&
		(form.Mode == view.ModeLogin || form.Name != "") {
		password, err := env.Prompt("Password: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		form.Password = password
	}

	if err := form.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(errOut, form.PendingMessage())
	}

	var (
		sess *service.Session
		ok   bool
		err  error
	)
	if form.Mode == view.ModeSignup {
		sess, ok, err = env.Accounts.Signup(ctx, form.Name, form.Email, form.Password)
	} else {
		sess, ok, err = env.Accounts.Login(ctx, form.Email, form.Password)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintln(errOut, "error: cancelled")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
	if !ok {
		fmt.Fprintf(errOut, "error: %s\n", form.FailureMessage())
		return exitcode.AuthError
	}

	cfg.Log().Debug("authenticated", "user", sess.ID)
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (signed in as %s)\n", sess.Name)
	}
	return exitcode.Success
}
