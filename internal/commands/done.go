package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It flips completion, so running
// it twice on the same task restores the original state.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskflow done <ref...>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	found, code := parseAndResolve(env.Tasks, args, errOut)
	if code != exitcode.Success {
		return code
	}

	for _, task := range found {
		if _, err := env.Tasks.Toggle(ctx, task.ID); err != nil {
			return reportTaskError(errOut, err)
		}
		cfg.Log().Debug("task toggled", "id", task.ID, "completed", !task.Completed)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
