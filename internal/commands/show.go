package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints every field of one task.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show task details" }
func (c *ShowCmd) Usage() string     { return "taskflow show <ref>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	found, code := parseAndResolve(env.Tasks, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(found) > 1 {
		fmt.Fprintf(errOut, "error: show takes one task reference, got %d\n", len(found))
		return exitcode.UserError
	}
	output.NewPrinter(out).Detail(found[0])
	return exitcode.Success
}
