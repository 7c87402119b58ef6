// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import (
	"context"
	"time"
)

// Worker is the interface implemented by any background worker.
//
// Start launches the worker's background goroutine and returns immediately;
// the goroutine exits when ctx is cancelled or Stop is called. Stop blocks
// until the goroutine has fully exited and is safe to call when the worker
// is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// RecordSweeper removes expired records for a user. Satisfied by the record
// service.
type RecordSweeper interface {
	SweepExpired(ctx context.Context, userID int64, ttl time.Duration) (int, error)
}
