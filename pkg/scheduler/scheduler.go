// Package scheduler runs the periodic review triggers (retrospective
// summaries) on cron expressions.
package scheduler

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner with logging and context plumbing.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger
}

func New(logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Add registers a named job on a cron expression.
func (s *Scheduler) Add(spec, name string, job func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Debug("Running scheduled job", "job", name)
		job(context.Background())
	})
	if err != nil {
		return err
	}
	s.logger.Info("Scheduled job", "job", name, "cron", spec)
	return nil
}

// Start begins running jobs and stops them when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
}
