// Package view derives what the task screen shows: filtered lists,
// summary counts and form validation.
package view

import (
	"fmt"
	"strings"

	"taskflow/internal/service"
)

// StatusFilter selects tasks by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// ParseStatus parses a status filter name. Empty means all.
func ParseStatus(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPending, StatusCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("invalid status filter: %s (want all, pending or completed)", s)
	}
}

// PriorityAll disables priority filtering.
const PriorityAll = "all"

// ParsePriorityFilter parses a priority filter. Empty or "all" returns "".
func ParsePriorityFilter(s string) (service.Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, PriorityAll) {
		return "", nil
	}
	p, err := service.ParsePriority(s)
	if err != nil {
		return "", fmt.Errorf("invalid priority filter: %s (want all, low, medium or high)", s)
	}
	return p, nil
}

// Filter narrows a task list. The zero value matches everything.
// Search, Status and Priority are AND-combined.
type Filter struct {
	// Search is matched case-insensitively against title and description.
	Search string

	// Status selects pending or completed tasks; "" or StatusAll keeps both.
	Status StatusFilter

	// Priority keeps only tasks of this priority; "" keeps all.
	Priority service.Priority
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t service.Task) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}

	switch f.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}

// Active reports whether the filter narrows anything.
func (f Filter) Active() bool {
	return f.Search != "" || (f.Status != "" && f.Status != StatusAll) || f.Priority != ""
}

// Entry is a task paired with its 1-based position in the unfiltered list,
// so filtered output can still be referenced by number.
type Entry struct {
	Num  int
	Task service.Task
}

// Apply returns the matching tasks in their original order.
func (f Filter) Apply(tasks []service.Task) []Entry {
	var out []Entry
	for i, t := range tasks {
		if f.Matches(t) {
			out = append(out, Entry{Num: i + 1, Task: t})
		}
	}
	return out
}

// Summary holds the counts shown above the task list.
type Summary struct {
	Total        int
	Completed    int
	Pending      int
	HighPriority int // high priority and not completed
}

// Summarize counts tasks.
func Summarize(tasks []service.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.Priority == service.PriorityHigh {
			s.HighPriority++
		}
	}
	return s
}

// Empty-state messages.
const (
	NoTasksMessage   = "No tasks yet. Create your first task to get started!"
	NoMatchesMessage = "No tasks match your current filters."
)

// EmptyMessage returns the message shown when nothing is listed:
// one for an empty account, another when filters hide everything.
func EmptyMessage(total int) string {
	if total == 0 {
		return NoTasksMessage
	}
	return NoMatchesMessage
}
