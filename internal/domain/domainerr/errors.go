// Package domainerr defines the typed failures returned across the trade-in
// engine boundary. Callers match them with errors.Is against the exported
// sentinels and read Code to pick a message.
package domainerr

import (
	"errors"
	"fmt"
)

// Code identifies a failure class.
type Code string

const (
	CodeInvalidFormat              Code = "INVALID_FORMAT"
	CodeChecksumMismatch           Code = "CHECKSUM_MISMATCH"
	CodeInvalidIdentity            Code = "INVALID_IDENTITY"
	CodeBlocked                    Code = "BLOCKED"
	CodeDuplicateIdentity          Code = "DUPLICATE_IDENTITY"
	CodeUnknownDeviceConfiguration Code = "UNKNOWN_DEVICE_CONFIGURATION"
	CodeValidation                 Code = "VALIDATION_ERROR"
	CodeNotFound                   Code = "NOT_FOUND"
	CodeNotApproved                Code = "NOT_APPROVED"
	CodeAlreadyFinalized           Code = "ALREADY_FINALIZED"
	CodeConcurrentModification     Code = "CONCURRENT_MODIFICATION"
)

// Error is a typed domain failure.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on code, so wrapped instances with their own message still
// compare equal to the sentinel. InvalidFormat and ChecksumMismatch are both
// InvalidIdentity.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Code == e.Code {
		return true
	}
	return t.Code == CodeInvalidIdentity && (e.Code == CodeInvalidFormat || e.Code == CodeChecksumMismatch)
}

// Sentinels.
var (
	ErrInvalidFormat              = &Error{Code: CodeInvalidFormat, Message: "identity must be exactly 15 digits"}
	ErrChecksumMismatch           = &Error{Code: CodeChecksumMismatch, Message: "identity check digit does not match"}
	ErrInvalidIdentity            = &Error{Code: CodeInvalidIdentity, Message: "invalid identity number"}
	ErrBlocked                    = &Error{Code: CodeBlocked, Message: "identity is blocked"}
	ErrDuplicateIdentity          = &Error{Code: CodeDuplicateIdentity, Message: "identity already has an active trade-in"}
	ErrUnknownDeviceConfiguration = &Error{Code: CodeUnknownDeviceConfiguration, Message: "no base value for device configuration"}
	ErrValidation                 = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound                   = &Error{Code: CodeNotFound, Message: "not found"}
	ErrNotApproved                = &Error{Code: CodeNotApproved, Message: "assessment is not approved"}
	ErrAlreadyFinalized           = &Error{Code: CodeAlreadyFinalized, Message: "assessment is already finalized"}
	ErrConcurrentModification     = &Error{Code: CodeConcurrentModification, Message: "assessment was modified concurrently"}
)

// New returns an error of code with a specific message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation returns a ValidationError naming the offending field.
func Validation(field, reason string) *Error {
	return New(CodeValidation, "%s: %s", field, reason)
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
