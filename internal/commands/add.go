package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/view"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	priority    string
	category    string
}

// SetFields sets the optional task fields (for testing).
func (c *AddCmd) SetFields(description, priority, category string) {
	c.description = description
	c.priority = priority
	c.category = category
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskflow add [-d <description>] [-p low|medium|high] [-c <category>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.description, "description", "d", "", "")
	fs.StringVarP(&c.priority, "priority", "p", view.NewTaskForm().Priority, "")
	fs.StringVarP(&c.category, "category", "c", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	form := view.NewTaskForm()
	form.Title = strings.Join(args, " ")
	form.Description = c.description
	form.Category = c.category
	if c.priority != "" {
		form.Priority = c.priority
	}

	data, err := form.FormData()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := env.Tasks.Add(ctx, data)
	if err != nil {
		return reportTaskError(errOut, err)
	}

	cfg.Log().Debug("task added", "id", task.ID)
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (%d)\n", len(env.Tasks.Tasks()))
	}
	return exitcode.Success
}
