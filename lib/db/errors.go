package db

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess         RetCode = iota // 0: Operation executed successfully.
	RetCEncoding                       // 1: Value could not be encoded with the store's serialization method.
	RetCKeyNotFound                    // 2: Key (or list) does not exist.
	RetCTypeMismatch                   // 3: Stored value is of a different kind or decodes to an incompatible shape.
	RetCIndexOutOfRange                // 4: List index is >= list length.
	RetCWrite                          // 5: Filesystem failure during dump; in-memory state is still valid.
	RetCLoad                           // 6: Persisted file is malformed or unreadable.
	RetCFileNotFound                   // 7: Persisted file does not exist.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCEncoding:
		return "EncodingError"
	case RetCKeyNotFound:
		return "KeyNotFound"
	case RetCTypeMismatch:
		return "TypeMismatch"
	case RetCIndexOutOfRange:
		return "IndexOutOfRange"
	case RetCWrite:
		return "WriteError"
	case RetCLoad:
		return "LoadError"
	case RetCFileNotFound:
		return "FileNotFound"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the typed error returned by all store operations. It wraps a
// return code, a message and an optional underlying cause.
type Error struct {
	Code  RetCode // The return code
	Msg   string  // The error message
	Cause error   // The underlying error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("StoreError (code %s): %s: %v", e.Code, e.Msg, e.Cause)
	}
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// WrapError creates a new Error that carries an underlying cause.
func WrapError(code RetCode, msg string, cause error) *Error {
	return &Error{Code: code, Msg: msg, Cause: cause}
}

// HasCode reports whether err is (or wraps) a store Error with the given
// return code.
func HasCode(err error, code RetCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
