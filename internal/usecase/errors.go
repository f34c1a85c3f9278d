package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution and authentication failure kinds. These are the only errors
// the sagas ever hand back to callers; raw collaborator errors stay wrapped
// inside them.
var (
	ErrIdentifierNotFound  = errors.New("login identifier not found")
	ErrDuplicateIdentifier = errors.New("duplicate login identifier")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrIdentityUnconfirmed = errors.New("identity not confirmed")
)

// MissingFieldsError reports which required registration fields were blank
// after trimming. Validation fails fast with no side effects.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// IdentityCreationError means the identity provider rejected the create
// call. Nothing was persisted, there is nothing to compensate.
type IdentityCreationError struct {
	Cause error
}

func (e *IdentityCreationError) Error() string {
	return fmt.Sprintf("identity creation failed: %v", e.Cause)
}

func (e *IdentityCreationError) Unwrap() error {
	return e.Cause
}

// ProfilePersistenceError means every profile write attempt failed and the
// created identity has been compensated away (best effort).
type ProfilePersistenceError struct {
	Cause error
}

func (e *ProfilePersistenceError) Error() string {
	return fmt.Sprintf("profile persistence failed: %v", e.Cause)
}

func (e *ProfilePersistenceError) Unwrap() error {
	return e.Cause
}

// AuthenticationError carries a provider authentication failure that does
// not map to a known kind.
type AuthenticationError struct {
	Cause error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Cause)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}
