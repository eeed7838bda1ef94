package view

import (
	"errors"
	"strings"

	"taskflow/internal/service"
)

// Validation messages shown inline. They never reach the store.
var (
	ErrMissingCredentials = errors.New("please fill in all required fields")
	ErrMissingName        = errors.New("please enter your name")
)

// TaskForm is the create/edit form.
type TaskForm struct {
	Title       string
	Description string
	Priority    string
	Category    string
}

// NewTaskForm returns an empty create form.
func NewTaskForm() TaskForm {
	return TaskForm{Priority: string(service.PriorityMedium)}
}

// FormFromTask pre-fills the edit form from an existing task.
func FormFromTask(t service.Task) TaskForm {
	return TaskForm{
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    t.Category,
	}
}

// Validate blocks submission of a blank title or an unknown priority.
func (f TaskForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return service.ErrTitleRequired
	}
	if strings.TrimSpace(f.Priority) == "" {
		return nil
	}
	_, err := service.ParsePriority(f.Priority)
	return err
}

// FormData converts a validated form. An empty priority becomes medium.
func (f TaskForm) FormData() (service.TaskFormData, error) {
	if err := f.Validate(); err != nil {
		return service.TaskFormData{}, err
	}
	p := service.PriorityMedium
	if strings.TrimSpace(f.Priority) != "" {
		p, _ = service.ParsePriority(f.Priority)
	}
	return service.TaskFormData{
		Title:       f.Title,
		Description: f.Description,
		Priority:    p,
		Category:    f.Category,
	}, nil
}

// AuthMode selects sign-in or sign-up.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeSignup
)

// AuthForm is the sign-in / sign-up form.
type AuthForm struct {
	Mode     AuthMode
	Name     string
	Email    string
	Password string
}

// Validate checks required fields before any auth call is made.
func (f AuthForm) Validate() error {
	if f.Email == "" || f.Password == "" {
		return ErrMissingCredentials
	}
	if f.Mode == ModeSignup && f.Name == "" {
		return ErrMissingName
	}
	return nil
}

// FailureMessage is shown when the auth call returns false. Login does
// not say whether the email exists.
func (f AuthForm) FailureMessage() string {
	if f.Mode == ModeSignup {
		return "email already exists"
	}
	return "invalid email or password"
}

// PendingMessage is shown while the auth call is in flight.
func (f AuthForm) PendingMessage() string {
	if f.Mode == ModeSignup {
		return "Creating account..."
	}
	return "Signing in..."
}
