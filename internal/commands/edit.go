package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/view"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// Only flags that were given are changed.
type EditCmd struct {
	fs          *pflag.FlagSet
	title       string
	description string
	priority    string
	category    string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's fields" }
func (c *EditCmd) Usage() string {
	return "taskflow edit <ref> [--title <title>] [-d <description>] [-p low|medium|high] [-c <category>]"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.fs = fs
	fs.StringVarP(&c.title, "title", "t", "", "")
	fs.StringVarP(&c.description, "description", "d", "", "")
	fs.StringVarP(&c.priority, "priority", "p", "", "")
	fs.StringVarP(&c.category, "category", "c", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	found, code := parseAndResolve(env.Tasks, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(found) > 1 {
		fmt.Fprintf(errOut, "error: edit takes one task reference, got %d\n", len(found))
		return exitcode.UserError
	}
	task := found[0]

	// Start from the stored task, as the edit form does, and overlay flags.
	form := view.FormFromTask(task)
	changed := false
	if c.changed("title") {
		form.Title, changed = c.title, true
	}
	if c.changed("description") {
		form.Description, changed = c.description, true
	}
	if c.changed("priority") {
		form.Priority, changed = c.priority, true
	}
	if c.changed("category") {
		form.Category, changed = c.category, true
	}
	if !changed {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --description, --priority or --category)")
		return exitcode.UserError
	}

	data, err := form.FormData()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ok, err := env.Tasks.Update(ctx, task.ID, service.PatchFromForm(data))
	if err != nil {
		return reportTaskError(errOut, err)
	}
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %s\n", task.ID)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func (c *EditCmd) changed(name string) bool {
	return c.fs != nil && c.fs.Changed(name)
}
