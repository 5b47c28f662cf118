package shared

import (
	"errors"

	"github.com/samber/oops"
)

// Kind enumerates the recoverable zoo failures. The set is closed; every Kind
// is an error whose message is part of the external contract.
type Kind int

const (
	KindNameMissing Kind = iota + 1
	KindCapacity
	KindPredatorConflict
)

var kindMessages = map[Kind]string{
	KindNameMissing:      "Error: create animal - name is missing.",
	KindCapacity:         "Error: cage is at maximum capacity",
	KindPredatorConflict: "Error: add a predator to a cage with non-predators.",
}

// Error returns the fixed human-readable message of the kind
func (k Kind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return "Error: unknown zoo failure"
}

// Code returns the oops code attached to errors of this kind
func (k Kind) Code() string {
	switch k {
	case KindNameMissing:
		return "NAME_MISSING"
	case KindCapacity:
		return "CAGE_FULL"
	case KindPredatorConflict:
		return "PREDATOR_CONFLICT"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrNameMissing      error = KindNameMissing
	ErrCapacity         error = KindCapacity
	ErrPredatorConflict error = KindPredatorConflict
)

// NewKindError wraps a zoo failure kind with domain context
func NewKindError(kind Kind) error {
	return oops.
		Code(kind.Code()).
		In("domain").
		With("error_code", int(kind)).
		Wrap(kind)
}

// KindOf extracts the zoo failure kind from err, if any
func KindOf(err error) (Kind, bool) {
	var kind Kind
	if errors.As(err, &kind) {
		return kind, true
	}
	return 0, false
}

// MessageOf returns the fixed message for zoo failures and err.Error() otherwise
func MessageOf(err error) string {
	if kind, ok := KindOf(err); ok {
		return kind.Error()
	}
	return err.Error()
}

// Domain error codes
const (
	ErrCodeInvalidInput     = 1001
	ErrCodeNotFound         = 1002
	ErrCodeAlreadyExists    = 1003
	ErrCodeInvalidOperation = 1004

	// Animal specific errors (3000-3999)
	ErrCodeInvalidAnimalKind = 3001
	ErrCodeInvalidSpeed      = 3002

	// Cage specific errors (4000-4999)
	ErrCodeInvalidCapacity = 4001
)

// NewDomainError creates a new domain error using oops
func NewDomainError(code int, message string) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Errorf("%s", message)
}

// NewDomainErrorf creates a new domain error with formatted message
func NewDomainErrorf(code int, format string, args ...interface{}) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Errorf(format, args...)
}

// WrapDomainError wraps an existing error with domain context
func WrapDomainError(err error, code int, message string) error {
	return oops.
		Code(codeToString(code)).
		In("domain").
		With("error_code", code).
		Wrapf(err, "%s", message)
}

// ErrorCode returns the numeric domain code carried by err, or 0
func ErrorCode(err error) int {
	if kind, ok := KindOf(err); ok {
		return int(kind)
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return 0
	}
	code, _ := oopsErr.Context()["error_code"].(int)
	return code
}

// codeToString converts int error code to string
func codeToString(code int) string {
	switch code {
	case ErrCodeInvalidInput:
		return "INVALID_INPUT"
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeAlreadyExists:
		return "ALREADY_EXISTS"
	case ErrCodeInvalidOperation:
		return "INVALID_OPERATION"
	case ErrCodeInvalidAnimalKind:
		return "INVALID_ANIMAL_KIND"
	case ErrCodeInvalidSpeed:
		return "INVALID_SPEED"
	case ErrCodeInvalidCapacity:
		return "INVALID_CAPACITY"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Common domain error builders
func ErrInvalidInput(msg string) error {
	return NewDomainError(ErrCodeInvalidInput, msg)
}

func ErrNotFound(resource string) error {
	return NewDomainErrorf(ErrCodeNotFound, "%s not found", resource)
}

func ErrAlreadyExists(resource string) error {
	return NewDomainErrorf(ErrCodeAlreadyExists, "%s already exists", resource)
}

func ErrInvalidOperation(operation string) error {
	return NewDomainErrorf(ErrCodeInvalidOperation, "Invalid operation: %s", operation)
}
