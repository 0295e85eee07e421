// Package errors wraps github.com/pkg/errors so that stack traces recorded
// for errors raised within this module start at the caller, not inside this
// package.
package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// New creates a new error based on message. Wrapped so that this package
// does not appear in the stack trace.
var New = errors.New

// Errorf creates an error based on a format string and values. Wrapped so
// that this package does not appear in the stack trace.
var Errorf = errors.Errorf

// Wrap wraps an error with additional context. Wrapped so that this package
// does not appear in the stack trace.
var Wrap = errors.Wrap

// Wrapf wraps an error with additional context and a format specifier. If
// err is nil, Wrapf returns nil.
var Wrapf = errors.Wrapf

// WithStack annotates err with a stack trace at the point WithStack was
// called. If err is nil, WithStack returns nil.
var WithStack = errors.WithStack

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target, and if one is
// found, sets target to that error value and returns true.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Unwrap returns the result of calling the Unwrap method on err, if err's
// type contains an Unwrap method returning error.
func Unwrap(err error) error { return stderrors.Unwrap(err) }
