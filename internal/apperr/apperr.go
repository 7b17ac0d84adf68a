// Package apperr defines the error taxonomy shared by the services
// and mapped to HTTP statuses by the handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation covers bad caller input: hours out of range, a date
	// outside the editable window, a malformed date.
	Validation Kind = iota + 1
	// NotFound covers a missing record, including records owned by a
	// different user.
	NotFound
	// Conflict covers business-invariant violations not expressible as
	// plain validation, e.g. a duplicate public holiday date.
	Conflict
	// Storage covers failures of the entity store or holiday source.
	// Always propagated, never retried by the core.
	Storage
)

// Error carries the failed operation plus enough context (user, date)
// for the caller to log meaningfully. The core does not format
// user-facing messages.
type Error struct {
	Kind   Kind
	Op     string
	UserID int64
	Date   string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	s := e.Op
	if e.UserID != 0 {
		s += fmt.Sprintf(" user=%d", e.UserID)
	}
	if e.Date != "" {
		s += " date=" + e.Date
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(op, msg string) *Error {
	return &Error{Kind: Validation, Op: op, Msg: msg}
}

func NewNotFound(op, msg string) *Error {
	return &Error{Kind: NotFound, Op: op, Msg: msg}
}

func NewConflict(op, msg string) *Error {
	return &Error{Kind: Conflict, Op: op, Msg: msg}
}

func WrapStorage(op string, err error) *Error {
	return &Error{Kind: Storage, Op: op, Err: err}
}

func (e *Error) WithUser(userID int64) *Error {
	e.UserID = userID
	return e
}

func (e *Error) WithDate(date string) *Error {
	e.Date = date
	return e
}

// KindOf returns the Kind of err, or 0 for errors outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
