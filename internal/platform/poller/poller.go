// Package poller runs a periodic refresh bound to a context.
package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/platform/telemetry"
)

// Poller calls fn on a fixed interval until its context is cancelled.
type Poller struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   zerolog.Logger
}

func New(name string, interval time.Duration, fn func(ctx context.Context) error, logger zerolog.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger.With().Str("loop", name).Logger(),
	}
}

// Run blocks until ctx is done. Ticks never overlap: a tick that arrives
// while fn is still running is skipped by the ticker. Errors from fn are
// logged and the loop keeps going.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Msg("poller started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("poller stopped")
			return
		case <-ticker.C:
			telemetry.RecordPollTick(p.name)
			if err := p.fn(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn().Err(err).Msg("poll refresh failed")
			}
		}
	}
}
