// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Purger removes expired sessions and reports how many were removed.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

const purgeTimeout = time.Minute

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// AddSessionPurge schedules p to run on spec, e.g. "@every 10m".
func (s *Scheduler) AddSessionPurge(spec string, p Purger) error {
	_, err := s.cron.AddFunc(spec, func() { PurgeSessions(s.log, p) })
	if err != nil {
		return fmt.Errorf("schedule session purge %q: %w", spec, err)
	}
	return nil
}

// Start runs the jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// PurgeSessions runs one purge pass.
func PurgeSessions(log zerolog.Logger, p Purger) {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := p.PurgeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("session purge failed")
		return
	}
	if n > 0 {
		log.Info().Int("purged", n).Msg("expired sessions purged")
	}
}
