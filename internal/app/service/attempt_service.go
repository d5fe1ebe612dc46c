package service

import (
	"context"
	"fmt"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

// AttemptService owns the approval workflow. Approval decisions are one-way:
// pending may become approved or rejected, and neither terminal state can be
// revisited. Exam status is a separate field and is never touched here.
type AttemptService struct {
	attemptRepo repository.AttemptRepository
	audit       AuditRecorder
	clock       func() time.Time
}

func NewAttemptService(attemptRepo repository.AttemptRepository, audit AuditRecorder) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		audit:       audit,
		clock:       time.Now,
	}
}

func (s *AttemptService) GetAttempt(ctx context.Context, id int64) (*model.Attempt, error) {
	return s.attemptRepo.FindByID(ctx, id)
}

func (s *AttemptService) ListAttempts(ctx context.Context, filter repository.AttemptFilter) ([]model.Attempt, int, error) {
	return s.attemptRepo.List(ctx, filter)
}

func (s *AttemptService) ApprovalStats(ctx context.Context) (model.ApprovalStats, error) {
	return s.attemptRepo.ApprovalStats(ctx)
}

func (s *AttemptService) Approve(ctx context.Context, operatorID, attemptID int64) (*model.Attempt, error) {
	return s.decide(ctx, operatorID, attemptID, model.ApprovalApproved)
}

func (s *AttemptService) Reject(ctx context.Context, operatorID, attemptID int64) (*model.Attempt, error) {
	return s.decide(ctx, operatorID, attemptID, model.ApprovalRejected)
}

func (s *AttemptService) decide(ctx context.Context, operatorID, attemptID int64, to model.ApprovalStatus) (*model.Attempt, error) {
	decided, err := s.attemptRepo.DecideApproval(ctx, attemptID, to)
	if err != nil {
		return nil, common.Errorf("failed to update approval status: %w", err)
	}
	if !decided {
		// Nothing was pending: distinguish a missing attempt from one that
		// was already decided.
		attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
		if err != nil {
			return nil, err
		}
		return nil, common.Errorf("attempt %d is already %s: %w",
			attemptID, attempt.ApprovalStatus, common.ErrConflict)
	}

	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, common.Errorf("failed to reload attempt after decision: %w", err)
	}

	s.audit.Record(ctx, AuditEvent{
		Type:       model.AuditAction,
		AttemptID:  &attemptID,
		OperatorID: operatorID,
		Details:    fmt.Sprintf("attempt %d %s by operator %d", attemptID, to, operatorID),
		CreatedAt:  s.clock(),
	})
	return attempt, nil
}
