package sepa

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidIBAN  = errors.New("invalid IBAN")
)

// InvalidFieldError is returned by a setter whose input does not fit the
// field, usually because it is too long once decoded. Err carries the
// underlying parse failure, if any.
type InvalidFieldError struct {
	Field         string
	MaxLength     int
	Reason        string
	InstructionID string
	Err           error
}

func (e *InvalidFieldError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = fmt.Sprintf("longer than %d characters", e.MaxLength)
	}
	msg := fmt.Sprintf("%s: %s %s (instruction %q)", ErrInvalidField, e.Field, reason, e.InstructionID)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidFieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidField}
	}
	return []error{ErrInvalidField, e.Err}
}

// InvalidIBANError is returned by SetIBAN when the account number fails the
// structural or checksum check.
type InvalidIBANError struct {
	IBAN          string
	InstructionID string
}

func (e *InvalidIBANError) Error() string {
	return fmt.Sprintf("%s %q (instruction %q)", ErrInvalidIBAN, e.IBAN, e.InstructionID)
}

func (e *InvalidIBANError) Unwrap() error { return ErrInvalidIBAN }
