// Package service defines the domain types and the interfaces between the
// command layer and the storage-backed managers.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Priority is a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var (
	// ErrTitleRequired is returned when a task would end up with a blank title.
	ErrTitleRequired = errors.New("title required")

	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = errors.New("invalid priority")
)

// ParsePriority parses a priority name (case-insensitive, trimmed).
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPriority, s)
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Account is a registered credential set.
// Passwords are stored as entered.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the public projection of the signed-in account.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionFor projects an account into a session.
func SessionFor(a Account) *Session {
	return &Session{ID: a.ID, Email: a.Email, Name: a.Name}
}

// Task represents a single to-do item owned by one account.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TaskFormData holds the user-editable fields of a task.
type TaskFormData struct {
	Title       string
	Description string
	Priority    Priority
	Category    string
}

// TaskPatch is a partial update. Nil fields are left untouched.
// Setting Completed also sets or clears CompletedAt.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Category    *string
	Completed   *bool
}

// PatchFromForm builds a patch that overwrites every form field.
func PatchFromForm(data TaskFormData) TaskPatch {
	return TaskPatch{
		Title:       &data.Title,
		Description: &data.Description,
		Priority:    &data.Priority,
		Category:    &data.Category,
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Category == nil && p.Completed == nil
}
