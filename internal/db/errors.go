// ABOUTME: Error kinds returned by the kaomoji record and database layer
// ABOUTME: Callers match them with errors.Is; context is added by wrapping
package db

import "errors"

var (
	// ErrInvalidArgument reports malformed constructor input or an unusable
	// comparison target.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedEntry reports a database line that cannot be parsed.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrNotFound reports a missing database file, code or identity.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is never returned by Database itself. Commands that
	// refuse to overwrite an entry return it after checking Exists.
	ErrAlreadyExists = errors.New("already exists")
)
