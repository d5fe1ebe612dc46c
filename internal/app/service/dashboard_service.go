package service

import (
	"context"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

// DashboardStats are the landing-page counters, recomputed per request.
type DashboardStats struct {
	OngoingContests     int `json:"ongoing_contests"`
	TotalRooms          int `json:"total_rooms"`
	TotalAttempts       int `json:"total_attempts"`
	ActiveAttempts      int `json:"active_attempts"`
	PendingApprovals    int `json:"pending_approvals"`
	TotalViolations     int `json:"total_violations"`
	UnhandledViolations int `json:"unhandled_violations"`
}

type DashboardService struct {
	contestRepo   repository.ContestRepository
	roomRepo      repository.RoomRepository
	attemptRepo   repository.AttemptRepository
	violationRepo repository.ViolationRepository
	clock         func() time.Time
}

func NewDashboardService(
	contestRepo repository.ContestRepository,
	roomRepo repository.RoomRepository,
	attemptRepo repository.AttemptRepository,
	violationRepo repository.ViolationRepository,
) *DashboardService {
	return &DashboardService{
		contestRepo:   contestRepo,
		roomRepo:      roomRepo,
		attemptRepo:   attemptRepo,
		violationRepo: violationRepo,
		clock:         time.Now,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.OngoingContests, err = s.contestRepo.CountOngoing(ctx, s.clock()); err != nil {
		return nil, common.Errorf("dashboard contests: %w", err)
	}
	if stats.TotalRooms, err = s.roomRepo.CountAll(ctx); err != nil {
		return nil, common.Errorf("dashboard rooms: %w", err)
	}
	if stats.TotalAttempts, err = s.attemptRepo.CountAll(ctx); err != nil {
		return nil, common.Errorf("dashboard attempts: %w", err)
	}
	if stats.ActiveAttempts, err = s.attemptRepo.CountByStatus(ctx, model.ExamActive); err != nil {
		return nil, common.Errorf("dashboard active attempts: %w", err)
	}

	approvals, err := s.attemptRepo.ApprovalStats(ctx)
	if err != nil {
		return nil, common.Errorf("dashboard approvals: %w", err)
	}
	stats.PendingApprovals = approvals.Pending

	violations, err := s.violationRepo.Stats(ctx)
	if err != nil {
		return nil, common.Errorf("dashboard violations: %w", err)
	}
	stats.TotalViolations = violations.Total
	stats.UnhandledViolations = violations.Unhandled

	return stats, nil
}
