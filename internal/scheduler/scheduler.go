package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	sweepSpec  = "@every 10m"
	reportSpec = "0 21 * * *"
)

// Scheduler runs the bot's periodic jobs in UTC.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
	sweepFunc  func()
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetReportFunction sets the daily 21:00 UTC report job.
func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// SetSweepFunction sets the job run every ten minutes to expire idle sessions.
func (s *Scheduler) SetSweepFunction(f func()) {
	s.sweepFunc = f
}

// Start registers the configured jobs. With no jobs it does nothing.
func (s *Scheduler) Start() error {
	if s.sweepFunc != nil {
		if _, err := s.cron.AddFunc(sweepSpec, s.sweepFunc); err != nil {
			return err
		}
	}
	if s.reportFunc != nil {
		_, err := s.cron.AddFunc(reportSpec, func() {
			log.Println("🕘 Triggered daily report at 21:00 UTC")
			if err := s.reportFunc(s.ctx); err != nil {
				log.Printf("❌ Daily report failed: %v", err)
			}
		})
		if err != nil {
			return err
		}
	} else {
		log.Println("⚠️ Report function not set, daily reports disabled")
	}
	if !s.IsRunning() {
		return nil
	}
	s.cron.Start()
	log.Printf("📅 Scheduler started with %d job(s)", len(s.cron.Entries()))
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
