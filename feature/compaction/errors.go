package compaction

import (
	"errors"
	"fmt"
)

// Kind classifies a failure scoped to one merge group.
type Kind string

const (
	// KindNotFound: an object expected to exist is absent.
	KindNotFound Kind = "NOT_FOUND"
	// KindFetchFailed: the store failed while reading a source object.
	KindFetchFailed Kind = "FETCH_FAILED"
	// KindDecode: fetched bytes are not a valid table.
	KindDecode Kind = "DECODE_ERROR"
	// KindSchemaMismatch: tables handed to the merger do not share one schema,
	// or the inputs have no column in common.
	KindSchemaMismatch Kind = "SCHEMA_MISMATCH"
	// KindPublishFailed: head, get or put of the destination failed. Sources are kept.
	KindPublishFailed Kind = "PUBLISH_FAILED"
	// KindDeleteFailed: one source object could not be deleted after publication.
	KindDeleteFailed Kind = "DELETE_FAILED"
	// KindInvalidInput: a component was called with unusable arguments.
	KindInvalidInput Kind = "INVALID_INPUT"
)

// Error is the structured error returned by group-level operations.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Cause   error
}

// Error returns a formatted error string.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.Key != "" {
		msg += " (" + e.Key + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
// This lets callers write errors.Is(err, compaction.ErrDecode).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks by kind.
var (
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrFetchFailed    = &Error{Kind: KindFetchFailed, Message: "fetch failed"}
	ErrDecode         = &Error{Kind: KindDecode, Message: "decode failed"}
	ErrSchemaMismatch = &Error{Kind: KindSchemaMismatch, Message: "schema mismatch"}
	ErrPublishFailed  = &Error{Kind: KindPublishFailed, Message: "publish failed"}
	ErrDeleteFailed   = &Error{Kind: KindDeleteFailed, Message: "delete failed"}
	ErrInvalidInput   = &Error{Kind: KindInvalidInput, Message: "invalid input"}
)

func newError(kind Kind, key, message string, cause error) *Error {
	return &Error{Kind: kind, Key: key, Message: message, Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
