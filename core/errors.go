package core

import (
	"errors"
	"fmt"
)

// AuthenticationError signals rejected credentials, an incompatible
// auth/capability pairing detected at construction time, or an auth
// strategy that cannot be invoked.
type AuthenticationError struct {
	Message    string
	StatusCode int
	Details    any
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// RequestError signals a non-2xx HTTP response, a transport-level
// connection failure, or an unresolvable storage-system identifier.
type RequestError struct {
	Message    string
	StatusCode int
	Details    any
}

func (e *RequestError) Error() string {
	return e.Message
}

// UnexpectedResponseError signals a 2xx response whose body could not be
// parsed as JSON. It is deliberately distinct from RequestError so callers
// can tell "the server said no" apart from "the server said yes but garbled".
type UnexpectedResponseError struct {
	Message string
	Details any
}

func (e *UnexpectedResponseError) Error() string {
	return e.Message
}

// ResolutionError signals that a human-friendly identifier (host label,
// host-group label) could not be resolved to an API reference, or that
// mapping-target options were ambiguous or incomplete.
type ResolutionError struct {
	Message string
}

func (e *ResolutionError) Error() string {
	return e.Message
}

// ValidationError signals a local pre-flight validation failure. It is
// always raised before any network call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsAuthenticationErr(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

func IsRequestErr(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

func IsUnexpectedResponseErr(err error) bool {
	var respErr *UnexpectedResponseError
	return errors.As(err, &respErr)
}

func IsResolutionErr(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}

func IsValidationErr(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// ExpectStatusCodes reports whether err is a RequestError carrying one of
// the given HTTP status codes.
func ExpectStatusCodes(err error, codes ...int) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	for _, code := range codes {
		if reqErr.StatusCode == code {
			return true
		}
	}
	return false
}
