// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package apperr defines the domain error taxonomy. Every expected failure
// carries an HTTP status code and a client-safe message; anything else is
// treated as internal by the router's error handler.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Code    int
	Message string
	// Errors holds field-level validation messages, if any.
	Errors []string
}

func (e *Error) Error() string { return e.Message }

// As unwraps err into an *Error, or returns nil.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

func Validation(message string, fieldErrors ...string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message, Errors: fieldErrors}
}

func InvalidArgument(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// InvalidState rejects actions against an expired or deactivated resource.
func InvalidState(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Message: message}
}

func TooManyRequests(message string) *Error {
	return &Error{Code: http.StatusTooManyRequests, Message: message}
}

func Internal(message string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message}
}
