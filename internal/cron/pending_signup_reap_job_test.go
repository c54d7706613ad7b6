package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pokeverse/pokeverse-backend/pkg/logger"
)

type fakeReaper struct {
	cutoff  time.Time
	deleted int64
	err     error
	calls   int
}

func (f *fakeReaper) DeletePendingBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.calls++
	f.cutoff = cutoff
	return f.deleted, f.err
}

func TestPendingSignupReapJobUsesTTLCutoff(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	reaper := &fakeReaper{deleted: 4}
	job, err := NewPendingSignupReapJob(PendingSignupReapJobParams{
		Logger: logg,
		Repo:   reaper,
		TTL:    48 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	job.(*pendingSignupReapJob).now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run job: %v", err)
	}
	if reaper.calls != 1 {
		t.Fatalf("expected one delete call, got %d", reaper.calls)
	}
	want := fixed.Add(-48 * time.Hour)
	if !reaper.cutoff.Equal(want) {
		t.Fatalf("expected cutoff %v, got %v", want, reaper.cutoff)
	}
}

func TestPendingSignupReapJobDefaultsTTL(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	job, err := NewPendingSignupReapJob(PendingSignupReapJobParams{
		Logger: logg,
		Repo:   &fakeReaper{},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if got := job.(*pendingSignupReapJob).ttl; got != defaultPendingSignupTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultPendingSignupTTL, got)
	}
}

func TestPendingSignupReapJobPropagatesError(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	reaper := &fakeReaper{err: errors.New("db down")}
	job, err := NewPendingSignupReapJob(PendingSignupReapJobParams{
		Logger: logg,
		Repo:   reaper,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected error from failing repository")
	}
}
