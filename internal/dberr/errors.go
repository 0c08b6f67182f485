// Package dberr defines the tagged error type shared by every layer of the
// database service, and its translation to gRPC status codes at the RPC
// boundary.
//
// An Error decorates a message and an optional hint with a gRPC codes.Code,
// so a handler can construct one error value and have it translate straight
// to a status at the RPC boundary without a second mapping step.
package dberr

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// Err is the error type returned by every package in this module. It's not
// required to be used everywhere — any plain error is treated as Internal at
// the RPC boundary — but it lets callers attach a code, a hint, and
// positional metadata (e.g. which statement in a compound query failed).
type Err error

type err struct {
	msg   string
	hint  string
	code  codes.Code
	stmt  int // -1 when not applicable; ordinal of offending statement
}

func (e *err) Error() string { return e.msg }
func (e *err) Hint() string  { return e.hint }
func (e *err) Code() codes.Code {
	return e.code
}
func (e *err) StatementIndex() int { return e.stmt }

// Coder is implemented by errors carrying a gRPC code.
type Coder interface {
	error
	Code() codes.Code
}

// Hinter is implemented by errors carrying a human-facing hint.
type Hinter interface {
	error
	Hint() string
}

// StatementIndexer is implemented by classifier errors that know which
// statement (by ordinal) in a compound query caused the rejection.
type StatementIndexer interface {
	error
	StatementIndex() int
}

func newErr(code codes.Code, msg string, args ...interface{}) Err {
	return &err{msg: fmt.Sprintf(msg, args...), code: code, stmt: -1}
}

// InvalidArgument reports a malformed request, missing field, unknown
// identifier, or unsupported column type string.
func InvalidArgument(msg string, args ...interface{}) Err {
	return newErr(codes.InvalidArgument, msg, args...)
}

// PermissionDenied reports that the caller's access level is below the
// query's required level.
func PermissionDenied(msg string, args ...interface{}) Err {
	return newErr(codes.PermissionDenied, msg, args...)
}

// FailedPrecondition reports an inactive or missing connection, or an engine
// open failure.
func FailedPrecondition(msg string, args ...interface{}) Err {
	return newErr(codes.FailedPrecondition, msg, args...)
}

// Unimplemented reports an operation (or envelope case) that is not yet
// defined.
func Unimplemented(msg string, args ...interface{}) Err {
	return newErr(codes.Unimplemented, msg, args...)
}

// Internal reports a row decode failure or a protocol invariant violation.
func Internal(msg string, args ...interface{}) Err {
	return newErr(codes.Internal, msg, args...)
}

// WithHint decorates err with a human-facing suggestion. Returns nil if err
// is nil.
func WithHint(e error, hint string, args ...interface{}) Err {
	if e == nil {
		return nil
	}
	d := fromErr(e)
	d.hint = fmt.Sprintf(hint, args...)
	return d
}

// WithStatementIndex decorates err with the ordinal of the statement (within
// a compound query) that caused it. Returns nil if err is nil.
func WithStatementIndex(e error, idx int) Err {
	if e == nil {
		return nil
	}
	d := fromErr(e)
	// keep the innermost (first-assigned) index
	if d.stmt < 0 {
		d.stmt = idx
	}
	return d
}

// Code extracts the gRPC code from e, defaulting to codes.Internal for plain
// errors that don't implement Coder.
func Code(e error) codes.Code {
	if e == nil {
		return codes.OK
	}
	if c, ok := e.(Coder); ok {
		return c.Code()
	}
	return codes.Internal
}

func fromErr(e error) *err {
	if d, ok := e.(*err); ok {
		return d
	}

	out := &err{msg: e.Error(), stmt: -1}
	if c, ok := e.(Coder); ok {
		out.code = c.Code()
	} else {
		out.code = codes.Internal
	}
	if h, ok := e.(Hinter); ok {
		out.hint = h.Hint()
	}
	if s, ok := e.(StatementIndexer); ok {
		out.stmt = s.StatementIndex()
	}
	return out
}
