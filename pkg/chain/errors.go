package chain

import (
	"errors"
	"fmt"
)

// Code classifies hard failures: caller bugs or corrupted upstream data.
type Code string

const (
	CodeInvalidParameter   Code = "invalid_parameter"
	CodeInvalidAddress     Code = "invalid_address"
	CodeInvalidData        Code = "invalid_data"
	CodeUnsupportedChain   Code = "unsupported_chain"
	CodeAlreadyEnriched    Code = "already_enriched"
	CodeUnmappedResultCode Code = "unmapped_result_code"
	CodeNotImplemented     Code = "not_implemented"
)

var (
	ErrInvalidParameter   = &Error{Code: CodeInvalidParameter}
	ErrInvalidAddress     = &Error{Code: CodeInvalidAddress}
	ErrInvalidData        = &Error{Code: CodeInvalidData}
	ErrUnsupportedChain   = &Error{Code: CodeUnsupportedChain}
	ErrAlreadyEnriched    = &Error{Code: CodeAlreadyEnriched}
	ErrUnmappedResultCode = &Error{Code: CodeUnmappedResultCode}
	ErrNotImplemented     = &Error{Code: CodeNotImplemented}
)

// Error is a hard failure carrying a discrete code. Two errors match with errors.Is when
// their codes are equal, so callers compare against the Err* sentinels.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// NewError builds an Error with a message.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError builds an Error around an underlying cause.
func WrapError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return string(e.Code)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Message == "":
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or an empty code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
