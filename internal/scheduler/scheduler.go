// Package scheduler runs the three maintenance lifecycle scans on a shared
// cron runner. Each scan acts only on rows matching its own source status,
// so the tasks never need to coordinate. The scans do plain
// read-modify-write with no optimistic locking: run a single instance of
// this service, or guard it with external mutual exclusion.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/fleetrent/scheduling-service/internal/service"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron *cron.Cron
	svc  service.MaintenanceService
}

// New wires the reminder, due-promotion and auto-finish scans at the given
// interval. Intervals below one minute are clamped to one.
func New(svc service.MaintenanceService, intervalMinutes int) (*Scheduler, error) {
	if intervalMinutes < 1 {
		intervalMinutes = 1
	}
	spec := fmt.Sprintf("@every %dm", intervalMinutes)

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	s := &Scheduler{cron: c, svc: svc}

	jobs := []struct {
		name string
		run  func(context.Context) (int, error)
	}{
		{"MaintenanceReminder", svc.ScanReminders},
		{"MaintenanceDue", svc.PromoteDue},
		{"MaintenanceAutoFinish", svc.AutoFinish},
	}
	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(spec, func() { s.tick(job.name, job.run) }); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", job.name, err)
		}
		log.Printf("[%s] scheduled every %dm", job.name, intervalMinutes)
	}
	return s, nil
}

// tick is one failure-isolated unit of work: an error is logged and the next
// scheduled run proceeds normally.
func (s *Scheduler) tick(name string, run func(context.Context) (int, error)) {
	processed, err := run(context.Background())
	if err != nil {
		log.Printf("[%s] tick failed: %v", name, err)
		return
	}
	if processed > 0 {
		log.Printf("[%s] processed %d maintenance(s)", name, processed)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once in-flight
// ticks have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
