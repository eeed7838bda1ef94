package commands

import (
	"errors"
	"fmt"
	"io"

	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/tasks"
)

// resolveTasks resolves every ref against list before anything is changed,
// so a bad reference aborts the whole command. Duplicates are dropped.
func resolveTasks(list []service.Task, refs []string) ([]service.Task, error) {
	seen := make(map[string]bool, len(refs))
	var out []service.Task
	for _, ref := range refs {
		t, err := tasks.Find(list, ref)
		if err != nil {
			return nil, err
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}

// parseAndResolve parses refs from args and resolves them against svc.
// On failure it prints the error and returns a non-zero exit code.
func parseAndResolve(svc service.Service, args []string, errOut io.Writer) ([]service.Task, int) {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	found, err := resolveTasks(svc.Tasks(), refs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	return found, exitcode.Success
}

// reportTaskError prints a repository error and maps it to an exit code.
// Validation failures are the user's; everything else came from the store.
func reportTaskError(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrInvalidPriority) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}
