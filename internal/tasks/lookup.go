package tasks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskflow/internal/service"
)

var (
	// ErrNotFound is returned when a reference matches no task.
	ErrNotFound = errors.New("task not found")

	// ErrAmbiguous is returned when an ID prefix matches several tasks.
	ErrAmbiguous = errors.New("ambiguous task reference")
)

// Find resolves ref against list. ref is a 1-based position in list,
// a full task ID, or a unique ID prefix. A number outside the list is
// tried as an ID prefix before giving up.
func Find(list []service.Task, ref string) (service.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	n, err := strconv.Atoi(ref)
	isNum := err == nil
	if isNum && n >= 1 && n <= len(list) {
		return list[n-1], nil
	}

	var matches []service.Task
	for _, t := range list {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		if isNum {
			return service.Task{}, fmt.Errorf("%w: task number out of range: %d", ErrNotFound, n)
		}
		return service.Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, fmt.Errorf("%w: %s", ErrAmbiguous, ref)
	}
}
