package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

// ViolationService owns the violation lifecycle: created unhandled, handled
// exactly once, never un-handled.
type ViolationService struct {
	violationRepo repository.ViolationRepository
	attemptRepo   repository.AttemptRepository
	alertRepo     repository.AlertRepository
	audit         AuditRecorder
	clock         func() time.Time
}

func NewViolationService(
	violationRepo repository.ViolationRepository,
	attemptRepo repository.AttemptRepository,
	alertRepo repository.AlertRepository,
	audit AuditRecorder,
) *ViolationService {
	return &ViolationService{
		violationRepo: violationRepo,
		attemptRepo:   attemptRepo,
		alertRepo:     alertRepo,
		audit:         audit,
		clock:         time.Now,
	}
}

type CreateViolationRequest struct {
	AttemptID    int64          `json:"attempt_id"`
	Severity     model.Severity `json:"severity"`
	Text         string         `json:"text"`
	AlertID      *int64         `json:"alert_id,omitempty"`
	LogStartTime *time.Time     `json:"log_start_time,omitempty"`
	LogEndTime   *time.Time     `json:"log_end_time,omitempty"`
}

func (s *ViolationService) CreateViolation(ctx context.Context, operatorID int64, req CreateViolationRequest) (*model.Violation, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, common.Errorf("violation text is required: %w", common.ErrValidation)
	}

	if _, err := s.attemptRepo.FindByID(ctx, req.AttemptID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("attempt %d not found: %w", req.AttemptID, common.ErrBadRequest)
		}
		return nil, common.Errorf("failed to look up attempt: %w", err)
	}

	severity := req.Severity
	if req.AlertID != nil {
		alert, err := s.alertRepo.FindByID(ctx, *req.AlertID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.Errorf("alert %d not found: %w", *req.AlertID, common.ErrBadRequest)
			}
			return nil, common.Errorf("failed to look up alert: %w", err)
		}
		// A violation raised from an alert inherits the alert's severity
		// unless the request names one.
		if severity == "" {
			severity = alert.Severity
		}
	}
	if !severity.Valid() {
		return nil, common.Errorf("invalid severity %q: %w", severity, common.ErrValidation)
	}

	now := s.clock()
	logStart, logEnd := now, now
	if req.LogStartTime != nil {
		logStart = *req.LogStartTime
	}
	if req.LogEndTime != nil {
		logEnd = *req.LogEndTime
	}
	if logEnd.Before(logStart) {
		return nil, common.Errorf("log window end precedes start: %w", common.ErrValidation)
	}

	violation := &model.Violation{
		Severity:     severity,
		Text:         strings.TrimSpace(req.Text),
		AttemptID:    req.AttemptID,
		AlertID:      req.AlertID,
		CreatedBy:    operatorID,
		LogStartTime: logStart,
		LogEndTime:   logEnd,
	}
	if err := s.violationRepo.Create(ctx, violation); err != nil {
		return nil, common.Errorf("failed to create violation: %w", err)
	}

	s.audit.Record(ctx, AuditEvent{
		Type:       model.AuditAction,
		AttemptID:  &violation.AttemptID,
		AlertID:    violation.AlertID,
		OperatorID: operatorID,
		Details:    fmt.Sprintf("violation %d (%s) created on attempt %d", violation.ID, violation.Severity, violation.AttemptID),
		CreatedAt:  now,
	})
	return violation, nil
}

func (s *ViolationService) MarkHandled(ctx context.Context, operatorID, violationID int64) (*model.Violation, error) {
	handledAt := s.clock()
	handled, err := s.violationRepo.MarkHandled(ctx, violationID, operatorID, handledAt)
	if err != nil {
		return nil, common.Errorf("failed to mark violation handled: %w", err)
	}
	if !handled {
		if _, err := s.violationRepo.FindByID(ctx, violationID); err != nil {
			return nil, err
		}
		return nil, common.Errorf("violation %d is already handled: %w", violationID, common.ErrConflict)
	}

	violation, err := s.violationRepo.FindByID(ctx, violationID)
	if err != nil {
		return nil, common.Errorf("failed to reload violation: %w", err)
	}

	s.audit.Record(ctx, AuditEvent{
		Type:       model.AuditAction,
		AttemptID:  &violation.AttemptID,
		AlertID:    violation.AlertID,
		OperatorID: operatorID,
		Details:    fmt.Sprintf("violation %d handled by operator %d", violationID, operatorID),
		CreatedAt:  handledAt,
	})
	return violation, nil
}

func (s *ViolationService) GetViolation(ctx context.Context, id int64) (*model.Violation, error) {
	return s.violationRepo.FindByID(ctx, id)
}

func (s *ViolationService) ListViolations(ctx context.Context, filter repository.ViolationFilter) ([]model.Violation, int, error) {
	return s.violationRepo.List(ctx, filter)
}

func (s *ViolationService) Stats(ctx context.Context) (model.ViolationStats, error) {
	return s.violationRepo.Stats(ctx)
}

// ViolationCount reports the number of violations recorded against an
// attempt, zero included.
func (s *ViolationService) ViolationCount(ctx context.Context, attemptID int64) (int, error) {
	return s.violationRepo.CountByAttempt(ctx, attemptID)
}
