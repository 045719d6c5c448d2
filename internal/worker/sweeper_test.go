package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medagenda/agenda-api/internal/worker"
	"github.com/medagenda/agenda-api/pkg/logger"
)

type countingExpirer struct {
	calls   atomic.Int64
	gotTTL  time.Duration
	expired int
}

func (e *countingExpirer) CancelStalePending(ctx context.Context, ttl time.Duration) (int, error) {
	e.calls.Add(1)
	e.gotTTL = ttl
	return e.expired, nil
}

func TestSweeperRunsUntilCancelled(t *testing.T) {
	expirer := &countingExpirer{expired: 2}
	sweeper := worker.NewSweeper(expirer, logger.NewLogger(nil), 30*time.Minute, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return expirer.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}

	assert.Equal(t, 30*time.Minute, expirer.gotTTL)
}
