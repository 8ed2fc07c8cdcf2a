package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"MarketGrid/internal/model"
	"MarketGrid/internal/notifier"
)

// Collector produces the reports for one run.
type Collector interface {
	Collect(ctx context.Context) ([]*model.SymbolReport, error)
}

// Scheduler runs the report pipeline once or on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector Collector
	Presenter notifier.Presenter
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Overlapping cron runs are skipped.
func NewScheduler(ctx context.Context, col Collector, presenter notifier.Presenter) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Collector: col,
		Presenter: presenter,
		Ctx:       ctx,
	}
}

// Register schedules the report on the given six-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running report to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one full report: collect every symbol, then present.
// Nothing is presented if any symbol fails to fetch.
func (s *Scheduler) RunNow(ctx context.Context) error {
	log.Println("[INFO] running report")
	s.Presenter.Reset()
	reports, err := s.Collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	for _, r := range reports {
		if err := s.Presenter.Present(ctx, r); err != nil {
			return fmt.Errorf("present %s: %w", r.Symbol, err)
		}
	}
	if err := s.Presenter.Flush(ctx); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	log.Printf("[INFO] report done: %d symbols", len(reports))
	return nil
}

func (s *Scheduler) reportTask() {
	if err := s.RunNow(s.Ctx); err != nil {
		log.Printf("[ERROR] scheduled report: %v", err)
	}
}
