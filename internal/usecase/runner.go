package usecase

import (
	"context"
	"log/slog"
	"time"

	"SportsNewsHub/internal/ports"
)

// A whole run is bounded so a slow candidate cannot extend it indefinitely.
const runDeadline = 10 * time.Minute

// Runner wires the scheduler driver with the pipeline. A failed run is
// logged and never prevents the next scheduled one.
type Runner struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewRunner returns a helper to start/stop recurring pipeline runs.
func NewRunner(driver ports.Scheduler, pipeline *Pipeline, notifier ports.Notifier, logger *slog.Logger) *Runner {
	return &Runner{driver: driver, pipeline: pipeline, notifier: notifier, logger: logger}
}

// Start registers the pipeline with the provided scheduler.
func (r *Runner) Start(ctx context.Context) error {
	if r.driver == nil || r.pipeline == nil {
		return nil
	}

	job := func(time.Time) {
		r.RunOnce(ctx)
	}

	return r.driver.Start(ctx, job)
}

// RunOnce performs a single bounded pipeline run, logging the outcome.
// A panic escaping the pipeline is confined here so the scheduler goroutine
// and the host process survive it.
func (r *Runner) RunOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, runDeadline)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil && r.logger != nil {
			r.logger.Error("pipeline run panicked", "panic", rec)
		}
	}()

	saved, err := r.pipeline.Run(runCtx)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("scheduled pipeline run failed", "error", err)
		}
		return
	}

	if r.notifier != nil {
		if err := r.notifier.PublishRunSummary(runCtx, saved); err != nil && r.logger != nil {
			r.logger.Warn("run summary notification failed", "error", err)
		}
	}
}

// Stop gracefully tears down the underlying scheduler.
func (r *Runner) Stop(ctx context.Context) error {
	if r.driver == nil {
		return nil
	}

	return r.driver.Stop(ctx)
}
