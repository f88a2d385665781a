package errors

import (
	"fmt"
)

// Error is the domain error of AcademicReads. The code follows HTTP
// status semantics and is used by the transports to answer, and by the
// taxonomy predicates in code.go.
type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode defines the code used when none is given. It is set to
// 500, Internal Server Error.
var DefaultCode = 500

type domainError struct {
	code  int
	msg   string
	cause *domainError
}

func (err *domainError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *domainError) Code() int {
	return err.code
}

func (err *domainError) Message() string {
	return err.msg
}

func (err *domainError) Cause() error {
	if err.cause == nil {
		return nil
	}
	return err.cause
}

type ErrorEnricher func(error) error

func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		if err, ok := err.(*domainError); ok {
			err.code = code
			return err
		}

		return &domainError{
			msg:   err.Error(),
			code:  code,
			cause: nil,
		}
	}
}

func WithCause(cause error) ErrorEnricher {
	var domainCause *domainError
	switch cause := cause.(type) {
	case nil:
	case *domainError:
		domainCause = cause
	default:
		domainCause = &domainError{msg: cause.Error(), code: DefaultCode, cause: nil}
	}

	return func(err error) error {
		if err == nil {
			return nil
		}

		if err, ok := err.(*domainError); ok {
			err.cause = domainCause
			return err
		}

		code := DefaultCode
		if domainCause != nil {
			code = domainCause.code
		}
		return &domainError{
			msg:   err.Error(),
			code:  code,
			cause: domainCause,
		}
	}
}

func New(msg string, fs ...ErrorEnricher) error {
	var err error = &domainError{
		msg:   msg,
		code:  DefaultCode,
		cause: nil,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}
