package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Custom error types for the catalog application

// ErrNotFound is returned when a looked-up record doesn't exist in the database
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint would be violated
var ErrDuplicate = errors.New("already exists")

// ErrInvalidCredentials is returned when an email/password pair or a token is rejected
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrMissingEmail is returned when a user is created without an email address
var ErrMissingEmail = errors.New("users must have an email address")

// ErrSelfDelete is returned when an admin tries to delete their own account
var ErrSelfDelete = errors.New("you can't delete yourself")

// ErrMissingMailCredentials is returned when the SES transport has no credentials configured
var ErrMissingMailCredentials = errors.New("missing AWS SES credentials")

// NonFieldErrors is the key used for errors that are not tied to a single field.
const NonFieldErrors = "non_field_errors"

// ValidationError carries per-field messages, keyed by the JSON field name.
// Cause, when set, is the sentinel the error stands for.
type ValidationError struct {
	Fields map[string][]string
	Cause  error
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for the given field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// NewFieldError creates a ValidationError for a single field.
func NewFieldError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// NewNonFieldError creates a ValidationError not bound to a specific field.
func NewNonFieldError(message string) *ValidationError {
	return NewFieldError(NonFieldErrors, message)
}

// ErrIncorrectPassword matches the error returned when the acting user's current password doesn't match
var ErrIncorrectPassword = errors.New("incorrect current password")

// ErrNotOwner matches the error returned when a user tries to change someone else's password
var ErrNotOwner = errors.New("not the account owner")

// IncorrectPasswordError returns a new field error wrapping ErrIncorrectPassword.
func IncorrectPasswordError() *ValidationError {
	v := NewFieldError("current_password", "The current password is incorrect.")
	v.Cause = ErrIncorrectPassword
	return v
}

// NotOwnerError returns a new non-field error wrapping ErrNotOwner.
func NotOwnerError() *ValidationError {
	v := NewNonFieldError("You can only change your own password.")
	v.Cause = ErrNotOwner
	return v
}

// BrandInUseError is returned when a brand is still referenced by products
type BrandInUseError struct {
	Brand    string
	Products []string
}

func (e BrandInUseError) Error() string {
	return fmt.Sprintf("Cannot delete this brand because it is referenced by the following products: %s",
		strings.Join(e.Products, ", "))
}

// MailSendError is returned when the mail provider rejects a message
type MailSendError struct {
	Reason string
}

func (e MailSendError) Error() string {
	return fmt.Sprintf("Failed to send email: %s", e.Reason)
}

// ErrConfigLoad is returned when configuration loading fails
type ErrConfigLoad struct {
	Path   string
	Reason string
}

func (e ErrConfigLoad) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Reason)
}
