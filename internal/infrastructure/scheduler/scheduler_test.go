package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestScheduler_AddJob(t *testing.T) {
	s := New(time.UTC, time.Second, zerolog.Nop())

	if err := s.AddJob("weekly_transition", "0 20 * * 0", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if err := s.AddJob("broken", "not a spec", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for invalid spec")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestScheduler_RunPassesTimeoutContext(t *testing.T) {
	s := New(time.UTC, 50*time.Millisecond, zerolog.Nop())

	var hadDeadline bool
	s.run("probe", func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return errors.New("logged, not returned")
	})

	if !hadDeadline {
		t.Fatal("job context should carry the job timeout")
	}
}

func TestScheduler_StopCancelsJobs(t *testing.T) {
	s := New(time.UTC, time.Minute, zerolog.Nop())
	s.Start()

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.ctx.Err() == nil {
		t.Fatal("job context should be cancelled after Stop")
	}
}
