package store

import "errors"

var (
	// ErrUserSecretExists is returned by UserSecretRepository.Create when a
	// secret was already provisioned for the user (unique violation). The
	// caller re-reads instead of overwriting: a server secret is never
	// rotated.
	ErrUserSecretExists = errors.New("user secret already exists")

	// ErrUserSecretNotFound is returned when no secret has been provisioned
	// for the user yet.
	ErrUserSecretNotFound = errors.New("user secret not found")

	// ErrCaptureSessionNotFound covers every failed redemption: missing,
	// expired, or already-used token. One error kind by design.
	ErrCaptureSessionNotFound = errors.New("capture session not found")

	// ErrBuildingSQLQuery indicates the squirrel builder failed to render a
	// statement.
	ErrBuildingSQLQuery = errors.New("error building SQL query")

	// ErrExecutingQuery indicates a driver-level failure running a query.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow indicates a failure scanning a result row.
	ErrScanningRow = errors.New("error scanning row")
)
