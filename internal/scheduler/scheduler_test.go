package scheduler

import (
	"context"
	"testing"
)

func TestStart_NoJobs(t *testing.T) {
	s := New()
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("scheduler without jobs should not run")
	}
	s.Stop()
}

func TestStart_RegistersJobs(t *testing.T) {
	s := New()
	s.SetSweepFunction(func() {})
	s.SetReportFunction(func(context.Context) error { return nil })
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()
	if got := len(s.cron.Entries()); got != 2 {
		t.Fatalf("entries = %d, want 2", got)
	}
}
