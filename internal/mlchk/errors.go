// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mlchk implements MeshLink's structured error kinds on top of
// gosl/chk's Err/Panic helpers, adding a machine-readable Kind so
// callers can branch on failure category (spec §7).
package mlchk

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind classifies a MeshLink failure. See spec.md §7.
type Kind int

// error kinds
const (
	DataSizeMismatch Kind = iota
	ParseError
	SchemaValidation
	Duplicate
	UnresolvedReference
	NotFound
	KernelError
)

func (k Kind) String() string {
	switch k {
	case DataSizeMismatch:
		return "DataSizeMismatch"
	case ParseError:
		return "ParseError"
	case SchemaValidation:
		return "SchemaValidation"
	case Duplicate:
		return "Duplicate"
	case UnresolvedReference:
		return "UnresolvedReference"
	case NotFound:
		return "NotFound"
	case KernelError:
		return "KernelError"
	}
	return "Unknown"
}

// Error is a MeshLink structured error. It wraps an optional cause so
// chains can be inspected with errors.Is/errors.As/errors.Unwrap. Msg is
// built through gosl/chk.Err's formatting, the same helper gofem's
// fem/element.go and msolid/dp.go use to build their own errors.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Err builds a *Error of the given kind, formatting its message through
// gosl/chk.Err rather than a bare fmt.Sprintf.
func Err(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: chk.Err(format, args...).Error()}
}

// Wrap builds a *Error of the given kind around an existing cause,
// formatting its message through gosl/chk.Err.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: chk.Err(format, args...).Error(), Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// Panic raises a runtime panic for programmer-error invariants that must
// never occur in correctly-operating code (e.g. a dangling index map
// found during teardown). It is never used for ordinary, recoverable
// failures -- those are always returned as *Error. Delegates directly to
// gosl/chk.Panic, the same helper gofem's msolid/hyperelast1.go and
// fem/e_u.go raise programmer-error panics with.
func Panic(format string, args ...interface{}) {
	chk.Panic(format, args...)
}
