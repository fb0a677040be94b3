package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrNotFound = errors.New("record not found")

	// ErrAuthenticationFailed never says which credential was wrong.
	ErrAuthenticationFailed = errors.New("invalid email or password")
)

// StorageUnavailableError is returned when the persistence gateway could not
// complete a read or a write.
type StorageUnavailableError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a draft is rejected before reaching a repository.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransitionError is returned when a prospect cannot be moved to a status.
type TransitionError struct {
	Current Status
	Target  Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move prospect from %q to %q", e.Current, e.Target)
}
