package errs

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindDuplicateKey    Kind = "DUPLICATE_KEY"
	KindValidation      Kind = "VALIDATION"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindInternal        Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) StackTrace() []byte {
	if e == nil {
		return nil
	}
	return e.Stack
}

func New(kind Kind, message string, err error) *Error {
	var stack []byte
	var ge *goerrors.Error
	switch {
	case err == nil:
		stack = goerrors.Wrap(message, 2).Stack()
	case errors.As(err, &ge):
		stack = ge.Stack()
	default:
		stack = goerrors.Wrap(err, 2).Stack()
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func NotFound(message string, err error) *Error {
	return New(KindNotFound, message, err)
}

func Forbidden(message string, err error) *Error {
	return New(KindForbidden, message, err)
}

func Duplicate(message string, err error) *Error {
	return New(KindDuplicateKey, message, err)
}

func Validation(message string, err error) *Error {
	return New(KindValidation, message, err)
}

func Unauthenticated(message string, err error) *Error {
	return New(KindUnauthenticated, message, err)
}

func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// MessageOf returns the user-facing message carried by err, if any.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Message
	}
	return ""
}
