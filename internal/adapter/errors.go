package adapter

import "errors"

var (
	// ErrAuthFailure is returned when the custodian rejects the request as
	// unauthorized. The server never says why; neither does the adapter.
	ErrAuthFailure = errors.New("custodian rejected credential")

	// ErrBadRequest is returned on HTTP 400.
	ErrBadRequest = errors.New("custodian rejected request")

	// ErrNotFound is returned on HTTP 404.
	ErrNotFound = errors.New("custodian resource not found")

	// ErrServiceUnavailable covers network failures and 5xx responses: the
	// custodian could not be reached or could not answer.
	ErrServiceUnavailable = errors.New("custodian unavailable")
)
