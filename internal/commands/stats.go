package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/view"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints the summary counts.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Show completed, pending and high-priority counts" }
func (c *StatsCmd) Usage() string     { return "taskflow stats" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	output.NewPrinter(out).Summary(view.Summarize(env.Tasks.Tasks()))
	return exitcode.Success
}
