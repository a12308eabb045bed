package jobs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/radicacion/internal/logging"
)

type sweepable interface {
	Sweep(ctx context.Context) (int, error)
}

// Sweeper expires stale pending submissions on a fixed interval.
type Sweeper struct {
	target   sweepable
	interval time.Duration
	logger   logging.Logger
}

func NewSweeper(target sweepable, interval time.Duration, logger logging.Logger) *Sweeper {
	return &Sweeper{target: target, interval: interval, logger: logger.With("module", "sweeper")}
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.target.Sweep(ctx)
			if err != nil {
				s.logger.Warn(ctx, "sweep failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Info(ctx, "expired pending submissions", "count", n)
			}
		}
	}
}
