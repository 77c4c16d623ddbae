// Package apperr defines the error kinds shared by the catalog, cart and admin services.
// Services return these unchanged so the HTTP layer can map them onto status codes.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports every field that failed validation.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NotFoundError means the referenced entity or cart line does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// PermissionError means the caller is known but lacks the required role.
type PermissionError struct {
	Role string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %q is not allowed to perform this operation", e.Role)
}

// UnauthenticatedError means there is no session at all.
type UnauthenticatedError struct{}

func (e *UnauthenticatedError) Error() string {
	return "authentication required"
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError unless it already carries one.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
