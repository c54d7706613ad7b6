package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/pokeverse/pokeverse-backend/pkg/logger"
	"github.com/pokeverse/pokeverse-backend/pkg/metrics"
)

const defaultPendingSignupTTL = 7 * 24 * time.Hour

// PendingSignupReapJobParams configure the stale-registration sweep.
type PendingSignupReapJobParams struct {
	Logger  *logger.Logger
	Repo    pendingSignupReaper
	Metrics *metrics.CronJobMetrics
	TTL     time.Duration
}

type pendingSignupReaper interface {
	DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewPendingSignupReapJob deletes unverified registrations older than the
// verification-token TTL. An expired token already fails verification on its
// own; the sweep only reclaims the rows.
func NewPendingSignupReapJob(params PendingSignupReapJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultPendingSignupTTL
	}
	return &pendingSignupReapJob{
		logg:    params.Logger,
		repo:    params.Repo,
		metrics: params.Metrics,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

type pendingSignupReapJob struct {
	logg    *logger.Logger
	repo    pendingSignupReaper
	metrics *metrics.CronJobMetrics
	ttl     time.Duration
	now     func() time.Time
}

func (j *pendingSignupReapJob) Name() string { return "pending-signup-reap" }

func (j *pendingSignupReapJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.ttl)
	deleted, err := j.repo.DeletePendingBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("pending signup reap: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddReaped(j.Name(), deleted)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"ttl_hours":    j.ttl.Hours(),
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "pending signup reap complete")
	return nil
}
