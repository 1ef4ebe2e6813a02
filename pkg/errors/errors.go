package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeNotFound     Code = "NOT_FOUND"
	CodePrecondition Code = "PRECONDITION_VIOLATION"
	CodeResource     Code = "RESOURCE_UNAVAILABLE"
	CodePersistence  Code = "PERSISTENCE_ERROR"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// Metadata describes how a code is handled once it surfaces: whether the
// caller shows it to the user, and whether the operation that produced it
// continues in a degraded form.
type Metadata struct {
	UserFacing    bool
	Recoverable   bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		UserFacing:    true,
		Recoverable:   false,
		PublicMessage: "validation failed",
	},
	CodeNotFound: {
		UserFacing:    true,
		Recoverable:   false,
		PublicMessage: "record not found",
	},
	CodePrecondition: {
		UserFacing:    true,
		Recoverable:   false,
		PublicMessage: "operation not allowed in current state",
	},
	CodeResource: {
		UserFacing:    false,
		Recoverable:   true,
		PublicMessage: "resource unavailable",
	},
	CodePersistence: {
		UserFacing:    false,
		Recoverable:   true,
		PublicMessage: "storage unavailable",
	},
	CodeInternal: {
		UserFacing:    false,
		Recoverable:   false,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
