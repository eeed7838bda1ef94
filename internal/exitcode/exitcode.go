// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, not found).
	UserError = 1

	// AuthError indicates an auth error (bad credentials, duplicate email,
	// not logged in).
	AuthError = 2

	// StorageError indicates the local store could not be read or written.
	StorageError = 3
)
