package topic

import "github.com/pkg/errors"

// Code is the terminal-condition taxonomy from which the RPC layer derives
// a gRPC status. The engine never needs to know the wire mapping itself;
// internal/rpc/status.go owns that translation.
type Code int

const (
	// CodeOK is never surfaced as an error; it exists only so Code has a
	// zero value distinct from every real failure.
	CodeOK Code = iota
	CodeInvalidArgument
	CodeNotFound
	CodeInternal
	CodeUnavailable
	CodeResourceExhausted
	CodeCancelled
)

func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "INVALID_ARGUMENT"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeInternal:
		return "INTERNAL"
	case CodeUnavailable:
		return "UNAVAILABLE"
	case CodeResourceExhausted:
		return "RESOURCE_EXHAUSTED"
	case CodeCancelled:
		return "CANCELLED"
	default:
		return "OK"
	}
}

// Error is a taxonomy-tagged error. Every terminal condition the engine
// produces is wrapped as one of these before it crosses a package boundary.
type Error struct {
	Code Code
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap lets errors.Is/As and errors.Cause see through to the underlying
// storage or listener error, the way github.com/pkg/errors-wrapped causes
// are expected to be inspectable.
func (e *Error) Unwrap() error { return e.err }

func newError(code Code, msg string) *Error {
	return &Error{Code: code, msg: msg}
}

func wrapError(code Code, err error, msg string) *Error {
	return &Error{Code: code, msg: msg, err: err}
}

// InvalidArgument builds a CodeInvalidArgument error.
func InvalidArgument(msg string) error { return newError(CodeInvalidArgument, msg) }

// NotFound builds a CodeNotFound error.
func NotFound(msg string) error { return newError(CodeNotFound, msg) }

// Internal wraps err as a terminal, non-retryable CodeInternal error.
func Internal(err error, msg string) error { return wrapError(CodeInternal, err, msg) }

// Unavailable wraps err as a retryable CodeUnavailable error, emitted once
// the historical retriever has exhausted its bounded retry budget.
func Unavailable(err error, msg string) error { return wrapError(CodeUnavailable, err, msg) }

// ResourceExhausted builds a CodeResourceExhausted error for a
// backpressure overflow.
func ResourceExhausted(msg string) error { return newError(CodeResourceExhausted, msg) }

// Cancelled builds a CodeCancelled error for a subscriber disconnect.
func Cancelled() error { return newError(CodeCancelled, "subscription cancelled") }

// CodeOf extracts the taxonomy Code from err, defaulting to CodeInternal
// for an error the engine did not itself classify: unknown errors are
// treated as fatal, never silently swallowed. A nil err yields CodeOK.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ErrGapUnreconciled is returned by the gap backfiller when a
// backfill does not account for every missing sequence number between two
// live deliveries. It is always wrapped through Internal before leaving the
// package.
var ErrGapUnreconciled = errors.New("missing messages: gap could not be reconciled from storage")

// ErrBackfillOrdering is returned when a backfill page violates strict
// ascending sequence-number contiguity.
var ErrBackfillOrdering = errors.New("missing messages: backfill returned out-of-order or non-contiguous sequence numbers")

// TransientStorageError marks an error from a MessagePager implementation
// as retryable, as opposed to StorageFatal which the
// retriever surfaces immediately as Internal. Storage adapters (e.g.
// internal/storage's pgconn error classification) wrap errors in this type
// rather than the engine guessing from error strings.
type TransientStorageError struct{ Err error }

func (e *TransientStorageError) Error() string { return e.Err.Error() }
func (e *TransientStorageError) Unwrap() error { return e.Err }

// IsTransientStorageError reports whether err (or a wrapped cause) was
// marked retryable by the storage layer.
func IsTransientStorageError(err error) bool {
	var t *TransientStorageError
	return errors.As(err, &t)
}
