package worker

import (
	"context"
	"time"

	"github.com/medagenda/agenda-api/pkg/logger"
)

// BookingExpirer cancels pending bookings that outlived their TTL.
type BookingExpirer interface {
	CancelStalePending(ctx context.Context, ttl time.Duration) (int, error)
}

// Sweeper periodically expires stale pending bookings.
type Sweeper struct {
	expirer  BookingExpirer
	logger   *logger.Logger
	ttl      time.Duration
	interval time.Duration
}

func NewSweeper(expirer BookingExpirer, l *logger.Logger, ttl, interval time.Duration) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		logger:   l.WithComponent("sweeper"),
		ttl:      ttl,
		interval: interval,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cancelled, err := s.expirer.CancelStalePending(ctx, s.ttl)
	if err != nil {
		s.logger.Error(err, "sweep failed")
		return
	}
	if cancelled > 0 {
		s.logger.Info("expired stale pending bookings", "cancelled", cancelled)
	}
}
