// Package client talks to the eventboard HTTP API.
//
// Client is the transport-agnostic contract used by the CLI; HTTPClient is
// the implementation. Failures are reported as sentinel errors that callers
// match with errors.Is: ErrUnavailable when the server cannot be reached,
// and ErrBadRequest, ErrUnauthorized, ErrTokenExpired, ErrNotFound or
// ErrAlreadyExists wrapped in *APIError for the corresponding statuses.
package client
