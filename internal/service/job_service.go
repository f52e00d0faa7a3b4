package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kommotirio/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
	log  *zap.Logger
}

func NewJobService(repo *repository.JobRepository, log *zap.Logger) *JobService {
	return &JobService{Repo: repo, log: log}
}

// CompletePastAppointments moves confirmed appointments whose end time has
// passed to 'completed' so they stop showing up as upcoming.
func (s *JobService) CompletePastAppointments(ctx context.Context) error {
	s.log.Info("cron: checking for appointments to mark as completed")

	ids, err := s.Repo.GetConfirmedAppointmentIDsPastEnd(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed appointments past end: %w", err)
	}

	if len(ids) == 0 {
		s.log.Info("cron: no confirmed appointments past their end time")
		return nil
	}

	updated, err := s.Repo.UpdateAppointmentStatuses(ctx, ids, statusCompleted)
	if err != nil {
		return fmt.Errorf("cron job: failed to update appointment statuses: %w", err)
	}

	s.log.Info("cron: marked appointments as completed", zap.Int64("count", updated))
	return nil
}

// PurgeStalePending deletes pending appointments older than the given cutoff.
// Pending bookings the salon never confirmed should not hold slots forever.
func (s *JobService) PurgeStalePending(ctx context.Context, before time.Time) (int64, error) {
	deleted, err := s.Repo.DeletePendingOlderThan(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to purge stale pending appointments: %w", err)
	}
	if deleted > 0 {
		s.log.Info("cron: purged stale pending appointments", zap.Int64("count", deleted))
	}
	return deleted, nil
}
