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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskflow rm <ref...>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	// Resolve all refs first; numbers shift once a task is removed.
	found, code := parseAndResolve(env.Tasks, args, errOut)
	if code != exitcode.Success {
		return code
	}

	for _, task := range found {
		if _, err := env.Tasks.Delete(ctx, task.ID); err != nil {
			return reportTaskError(errOut, err)
		}
		cfg.Log().Debug("task deleted", "id", task.ID)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
