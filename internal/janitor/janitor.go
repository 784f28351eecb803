// Package janitor runs the scheduled sweep that evicts stale intake
// sessions and abandoned orders.
package janitor

import (
	"github.com/robfig/cron/v3"

	"shopbot/core/logger"
	"shopbot/internal/engine"

	"log/slog"
)

// Janitor owns the cron schedule for Engine.EvictStale.
type Janitor struct {
	eng  *engine.Engine
	cron *cron.Cron
}

func New(eng *engine.Engine) *Janitor {
	return &Janitor{
		eng:  eng,
		cron: cron.New(),
	}
}

// Start registers the sweep on the given cron schedule (standard five-field
// expressions plus descriptors like "@every 10m") and starts the scheduler.
func (j *Janitor) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		sessions, orders := j.eng.EvictStale()
		if sessions > 0 || orders > 0 {
			logger.ENG.Info("sweep complete",
				slog.String("event", "janitor.sweep"),
				slog.Int("sessions", sessions),
				slog.Int("orders", orders),
			)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	logger.ENG.Info("janitor started",
		slog.String("event", "janitor.start"),
		slog.String("schedule", schedule),
	)
	return nil
}

// Stop halts the scheduler. Running sweeps finish on their own goroutine.
func (j *Janitor) Stop() {
	j.cron.Stop()
	logger.ENG.Info("janitor stopped", slog.String("event", "janitor.stop"))
}
