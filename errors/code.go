package errors

import (
	"net/http"
)

// Enrichers for the error taxonomy. Validation errors are 422s: the
// caller can correct them. EmailTaken is a 400 to match the register
// endpoint contract. Transient errors are 502s: the upstream registry
// failed, the call is safe to retry.
func BadRequest() ErrorEnricher   { return WithCode(http.StatusBadRequest) }
func Unauthorized() ErrorEnricher { return WithCode(http.StatusUnauthorized) }
func Forbidden() ErrorEnricher    { return WithCode(http.StatusForbidden) }
func NotFound() ErrorEnricher     { return WithCode(http.StatusNotFound) }
func Validation() ErrorEnricher   { return WithCode(http.StatusUnprocessableEntity) }
func Transient() ErrorEnricher    { return WithCode(http.StatusBadGateway) }

// Code extracts the HTTP code carried by err, falling back to
// DefaultCode for plain errors.
func Code(err error) int {
	if err, ok := err.(Error); ok {
		return err.Code()
	}
	return DefaultCode
}

func IsNotFound(err error) bool     { return Code(err) == http.StatusNotFound }
func IsUnauthorized(err error) bool { return Code(err) == http.StatusUnauthorized }
func IsValidation(err error) bool   { return Code(err) == http.StatusUnprocessableEntity }

// IsTransient reports whether err comes from a failing dependency and
// can be retried without corrupting local state.
func IsTransient(err error) bool {
	code := Code(err)
	return code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable ||
		code == http.StatusGatewayTimeout
}
