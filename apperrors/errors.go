// Package apperrors holds the error kinds shared by the stores, the services
// and the HTTP boundary.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrConflict         = errors.New("concurrent modification")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalid          = errors.New("invalid input")
	ErrProtected        = errors.New("resource is referenced")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// NotFoundError names the resource that could not be resolved.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns an error matching ErrNotFound for the given resource.
func NotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// Invalid wraps ErrInvalid with a user-facing message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// Protected wraps ErrProtected with a user-facing message.
func Protected(message string) error {
	return fmt.Errorf("%s: %w", message, ErrProtected)
}

// Unavailable wraps a storage failure so that it matches ErrStoreUnavailable
// while keeping the cause reachable through errors.Unwrap chains.
func Unavailable(op string, cause error) error {
	return &storeError{op: op, cause: cause}
}

type storeError struct {
	op    string
	cause error
}

func (e *storeError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.cause)
}

func (e *storeError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.cause}
}

// Message returns the text shown to API clients. It strips the trailing
// kind suffix added by Invalid, Protected and similar wrappers.
func Message(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return "store temporarily unavailable"
	}
	msg := err.Error()
	for _, kind := range []error{ErrInvalid, ErrProtected, ErrUnauthorized, ErrForbidden, ErrConflict} {
		if trimmed, ok := strings.CutSuffix(msg, ": "+kind.Error()); ok && trimmed != "" {
			return trimmed
		}
	}
	return msg
}
