package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"SportsNewsHub/internal/ports"
)

// CronScheduler triggers the pipeline on a fixed interval using robfig/cron.
type CronScheduler struct {
	interval time.Duration
	cron     *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler firing every interval.
func NewCronScheduler(interval time.Duration) *CronScheduler {
	return &CronScheduler{interval: interval}
}

// Start runs the job once immediately, then on every interval tick. The
// owner is expected to call Stop on shutdown; Start itself spawns no
// lifecycle goroutines that would race with it.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if c.cron != nil {
		return nil
	}

	c.cron = cron.New()
	spec := fmt.Sprintf("@every %s", c.interval)
	if _, err := c.cron.AddFunc(spec, func() { job(time.Now()) }); err != nil {
		c.cron = nil
		return fmt.Errorf("schedule pipeline: %w", err)
	}

	go job(time.Now())
	c.cron.Start()

	return nil
}

// Stop halts the cron runner, waiting for an in-flight job to return.
func (c *CronScheduler) Stop(ctx context.Context) error {
	if c.cron == nil {
		return nil
	}

	done := c.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	c.cron = nil
	return nil
}
