// Package jobs runs periodic housekeeping on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// NotificationPurger deletes read notifications older than a retention window.
type NotificationPurger interface {
	PurgeRead(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler wraps a cron runner with the service's jobs registered on it.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// NewScheduler creates a Scheduler with no jobs.
func NewScheduler(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// AddNotificationPurge registers the read-notification purge on the given cron schedule.
// A non-positive retention disables the job.
func (s *Scheduler) AddNotificationPurge(schedule string, purger NotificationPurger, retention time.Duration) error {
	if retention <= 0 {
		s.log.Info().Msg("Notification purge disabled")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.purge(purger, retention)
	})
	if err != nil {
		return fmt.Errorf("schedule notification purge %q: %w", schedule, err)
	}

	s.log.Info().Str("schedule", schedule).Dur("retention", retention).Msg("Notification purge scheduled")
	return nil
}

func (s *Scheduler) purge(purger NotificationPurger, retention time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := purger.PurgeRead(ctx, retention)
	if err != nil {
		s.log.Error().Err(err).Msg("Notification purge failed")
		return
	}
	s.log.Info().Int64("deleted", n).Msg("Notification purge finished")
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Scheduler stop timed out")
	}
}
