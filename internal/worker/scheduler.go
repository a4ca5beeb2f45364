package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

// ScanScheduler periodically enqueues a scan task per connected realm.
// Blizzard refreshes dumps roughly hourly but at unpredictable offsets, so
// scans poll much more often and rely on If-Modified-Since plus the dump
// hash to stay cheap.
type ScanScheduler struct {
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int

	Interval time.Duration
	Queue    string
}

func (s ScanScheduler) Run(
	ctx context.Context,
	g *errgroup.Group,
	connectedRealmIDs []int64,
) {
	g.Go(func() error {
		scheduler := asynq.NewScheduler(
			asynq.RedisClientOpt{
				Addr:     s.RedisAddress,
				Username: s.RedisUsername,
				Password: s.RedisPassword,
				DB:       s.RedisDB,
			},
			&asynq.SchedulerOpts{},
		)

		cronspec := fmt.Sprintf("@every %s", s.Interval)

		for _, id := range connectedRealmIDs {
			task, err := NewScanTask(id)
			if err != nil {
				return fmt.Errorf("build scan task for realm %d: %w", id, err)
			}

			if _, err := scheduler.Register(cronspec, task, asynq.Queue(s.Queue)); err != nil {
				return fmt.Errorf("register scan for realm %d: %w", id, err)
			}
		}

		logger(ctx).Info("scan scheduler started",
			"realms", len(connectedRealmIDs),
			"interval", s.Interval.String(),
		)

		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("scheduler.Start: %w", err)
		}

		<-ctx.Done()
		scheduler.Shutdown()

		logger(ctx).Info("scan scheduler stopped")

		return nil
	})
}
