// Package janitor runs the periodic cleanup of dead access token rows.
package janitor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/leagueforge/leagueforge/token/ledger"
)

const defaultInterval = 24 * time.Hour

// Metrics receives purge counts. The Prometheus collector satisfies it.
type Metrics interface {
	RecordTokensPurged(count int64)
}

type nopMetrics struct{}

func (nopMetrics) RecordTokensPurged(int64) {}

// Janitor deletes token rows already marked expired or revoked. Rows
// are only ever deleted after revocation, so a purge never invalidates
// a live session.
type Janitor struct {
	ledger   ledger.Repo
	interval time.Duration
	logger   zerolog.Logger
	metrics  Metrics
}

// Option configures a Janitor.
type Option func(*Janitor)

// WithInterval overrides the default 24h purge interval.
func WithInterval(interval time.Duration) Option {
	return func(j *Janitor) {
		if interval > 0 {
			j.interval = interval
		}
	}
}

// WithMetrics wires a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(j *Janitor) {
		if m != nil {
			j.metrics = m
		}
	}
}

// New creates a Janitor over the token ledger.
func New(ledgerRepo ledger.Repo, logger zerolog.Logger, options ...Option) (*Janitor, error) {
	if ledgerRepo == nil {
		return nil, errors.New("[janitor.New] nil ledger repo")
	}
	j := &Janitor{
		ledger:   ledgerRepo,
		interval: defaultInterval,
		logger:   logger,
		metrics:  nopMetrics{},
	}
	for _, option := range options {
		option(j)
	}
	return j, nil
}

// RunOnce performs a single purge pass. Purging nothing is not an
// error.
func (j *Janitor) RunOnce(ctx context.Context) (int64, error) {
	start := time.Now()
	purged, err := j.ledger.PurgeExpiredOrRevoked(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "[Janitor.RunOnce] purge")
	}
	j.metrics.RecordTokensPurged(purged)
	j.logger.Info().
		Int64("purged", purged).
		Dur("duration", time.Since(start)).
		Msg("token purge completed")
	return purged, nil
}

// Run purges on the configured interval until ctx is cancelled. A
// failed pass is logged and the loop continues.
func (j *Janitor) Run(ctx context.Context) {
	j.logger.Info().Dur("interval", j.interval).Msg("token janitor started")
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("token janitor stopped")
			return
		case <-ticker.C:
			if _, err := j.RunOnce(ctx); err != nil {
				j.logger.Error().Err(err).Msg("token purge failed")
			}
		}
	}
}
