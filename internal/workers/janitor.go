package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/logger"
)

// recordJanitor sweeps expired records for one user on a ticker. The first
// sweep runs immediately on Start so a device that was off past the TTL does
// not keep stale records until the first interval elapses.
type recordJanitor struct {
	sweeper RecordSweeper
	userID  int64
	ttl     time.Duration

	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewRecordJanitor creates a record janitor for userID. The janitor is idle
// until Start is called. If interval is zero or negative it defaults to 10
// minutes.
func NewRecordJanitor(sweeper RecordSweeper, userID int64, ttl, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &recordJanitor{
		sweeper:  sweeper,
		userID:   userID,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Start implements Worker. It stops any previously running sweep loop, then
// launches a goroutine that sweeps immediately and again every interval.
func (j *recordJanitor) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		j.sweep(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.sweep(jobCtx)
			}
		}
	}()
}

// Stop implements Worker. It cancels the sweep loop's context and blocks
// until the goroutine has fully exited. No-op when the janitor is not
// running.
func (j *recordJanitor) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *recordJanitor) sweep(ctx context.Context) {
	removed, err := j.sweeper.SweepExpired(ctx, j.userID, j.ttl)
	if err != nil {
		j.logger.Warn().Err(err).Int64("user_id", j.userID).Msg("record sweep failed")
		return
	}
	if removed > 0 {
		j.logger.Info().Int64("user_id", j.userID).Int("removed", removed).Msg("swept expired records")
	}
}
