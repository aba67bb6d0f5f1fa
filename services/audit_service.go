package services

import (
	"context"
	"time"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/repository"

	"go.uber.org/zap"
)

type AuditService struct {
	Repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{Repo: repo}
}

// Record writes one audit row for the session's worker.
func (s *AuditService) Record(ctx context.Context, sess checkout.Session, action, details, page string) error {
	return s.Repo.Record(ctx, &entity.AuditLog{
		WorkerID:   sess.WorkerID,
		Email:      sess.Email,
		ActionType: action,
		Details:    details,
		OnPage:     page,
	})
}

// Try records and only logs a failure; audit never blocks the action it
// describes.
func (s *AuditService) Try(ctx context.Context, sess checkout.Session, action, details, page string) {
	if err := s.Record(ctx, sess, action, details, page); err != nil {
		zap.L().Warn("audit record failed",
			zap.String("action", action),
			zap.Uint("workerId", sess.WorkerID),
			zap.Error(err))
	}
}

func (s *AuditService) List(ctx context.Context, f repository.AuditFilter) ([]entity.AuditLog, error) {
	return s.Repo.List(ctx, f)
}

func (s *AuditService) ActionTypes(ctx context.Context) ([]string, error) {
	return s.Repo.ActionTypes(ctx)
}

// Purge drops rows older than the retention window.
func (s *AuditService) Purge(ctx context.Context, retentionDays int, now time.Time) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	return s.Repo.PurgeBefore(ctx, now.AddDate(0, 0, -retentionDays))
}
