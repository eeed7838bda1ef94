package service

import "context"

// Service defines the task operations available to commands.
// All operations are scoped to the session the implementation was opened
// with. Commands never touch the store directly.
type Service interface {
	// Load re-reads the partition and returns it in stored order.
	// Absent or unreadable data yields an empty slice.
	Load(ctx context.Context) ([]Task, error)

	// Tasks returns the current in-memory snapshot.
	Tasks() []Task

	// Add creates a pending task from form data.
	Add(ctx context.Context, data TaskFormData) (Task, error)

	// Update merges patch into the task with the given ID.
	// Returns false if no such task exists.
	Update(ctx context.Context, id string, patch TaskPatch) (bool, error)

	// Delete removes the task with the given ID.
	// Returns false if no such task exists.
	Delete(ctx context.Context, id string) (bool, error)

	// Toggle flips the completion state of a task.
	// Returns false if no such task exists.
	Toggle(ctx context.Context, id string) (bool, error)
}

// Accounts defines the session/account operations.
// The boolean results of Signup and Login carry the auth outcome;
// errors are reserved for storage failures and cancellation.
type Accounts interface {
	// Restore loads the persisted session, if any.
	Restore(ctx context.Context) (*Session, error)

	// Current returns the active session or nil.
	Current() *Session

	// Signup registers a new account and signs it in.
	// Returns false if the email is already registered.
	Signup(ctx context.Context, name, email, password string) (*Session, bool, error)

	// Login signs in with an exact email and password match.
	// Returns false on mismatch, leaving any existing session in place.
	Login(ctx context.Context, email, password string) (*Session, bool, error)

	// Logout ends the active session.
	Logout(ctx context.Context) error
}
