package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("duplicate entry")
	ErrInvalidReference = errors.New("invalid reference")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStorage          = errors.New("storage failure")
)

// Dao errors
var (
	ErrDaoNotFound     = errors.New("dao not found")
	ErrTaskNotFound    = errors.New("task not found in dao")
	ErrSerialExhausted = errors.New("dao number sequence exhausted for year")
	ErrDuplicateSerial = errors.New("numeroListe already exists")
	ErrMemberNotInTeam = errors.New("team member not found in equipe")
)

// User errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
	ErrResetTokenInvalid    = errors.New("reset token invalid or expired")
)

// Comment errors
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("only the author or an admin can modify this comment")
)

// ValidationError carries field-level detail for malformed input.
// It unwraps to ErrValidation so callers can dispatch on the category.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a field-level validation error.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Mapping helpers: several errors belong to a broader category for
// HTTP status mapping.

// CategoryOf returns the taxonomy sentinel an error belongs to.
func CategoryOf(err error) error {
	switch {
	case errors.Is(err, ErrDaoNotFound),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrDuplicateSerial),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrConflict):
		return ErrConflict
	case errors.Is(err, ErrMemberNotInTeam),
		errors.Is(err, ErrInvalidReference):
		return ErrInvalidReference
	case errors.Is(err, ErrNotCommentOwner),
		errors.Is(err, ErrCannotDeactivateSelf),
		errors.Is(err, ErrForbidden):
		return ErrForbidden
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrSerialExhausted):
		return ErrValidation
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized
	default:
		return ErrStorage
	}
}
