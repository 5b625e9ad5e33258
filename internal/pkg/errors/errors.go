// Package errors holds the sentinel errors the service layer returns.
// Handlers translate them to HTTP statuses in one place, so nothing below
// the handlers imports net/http.
package errors

import "errors"

// ErrNotFound signals that the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized signals a missing or rejected credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidArgument signals input the caller must correct before retrying.
var ErrInvalidArgument = errors.New("invalid argument")
