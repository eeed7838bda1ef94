package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskflow` (no args) and `taskflow list [filters]`.
type ListCmd struct {
	search   string
	status   string
	priority string
}

// SetFilters sets the filter flags (for testing).
func (c *ListCmd) SetFilters(search, status, priority string) {
	c.search = search
	c.status = status
	c.priority = priority
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--search <text>] [--status all|pending|completed] [--priority all|low|medium|high]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.search, "search", "s", "", "")
	fs.StringVar(&c.status, "status", string(view.StatusAll), "")
	fs.StringVarP(&c.priority, "priority", "p", view.PriorityAll, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	filter, err := c.filter(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	all := env.Tasks.Tasks()
	entries := filter.Apply(all)
	p := output.NewPrinter(out)
	if !cfg.Quiet {
		p.Header(env.Session)
		p.Summary(view.Summarize(all))
		if filter.Active() {
			fmt.Fprintf(out, "Showing %d of %d tasks\n", len(entries), len(all))
		}
		fmt.Fprintln(out)
	}
	p.Tasks(entries, len(all))
	return exitcode.Success
}

// filter builds the view filter. Positional args are a shorthand for
// --search.
func (c *ListCmd) filter(args []string) (view.Filter, error) {
	status, err := view.ParseStatus(c.status)
	if err != nil {
		return view.Filter{}, err
	}
	priority, err := view.ParsePriorityFilter(c.priority)
	if err != nil {
		return view.Filter{}, err
	}
	search := c.search
	if search == "" && len(args) > 0 {
		search = strings.Join(args, " ")
	}
	return view.Filter{Search: search, Status: status, Priority: priority}, nil
}
