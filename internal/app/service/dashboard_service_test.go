package service

import (
	"context"
	"testing"
	"time"

	"proctor_admin/internal/domain/model"
)

func TestDashboardStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	contests := newMemContestRepo(
		&model.Contest{ID: 1, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
		&model.Contest{ID: 2, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
	)
	rooms := newMemRoomRepo(
		&model.Room{ID: 1, ContestID: 1, Capacity: 30},
		&model.Room{ID: 2, ContestID: 1, Capacity: 30},
		&model.Room{ID: 3, ContestID: 2, Capacity: 10},
	)
	attempts := newMemAttemptRepo(
		&model.Attempt{ID: 1, RoomID: 1, Status: model.ExamActive, ApprovalStatus: model.ApprovalPending},
		&model.Attempt{ID: 2, RoomID: 1, Status: model.ExamActive, ApprovalStatus: model.ApprovalApproved},
		&model.Attempt{ID: 3, RoomID: 2, Status: model.ExamCompleted, ApprovalStatus: model.ApprovalPending},
	)
	violations := newMemViolationRepo(
		&model.Violation{ID: 1, AttemptID: 1, Severity: model.SeverityHigh},
		&model.Violation{ID: 2, AttemptID: 1, Severity: model.SeverityLow, Handled: true},
	)

	s := NewDashboardService(contests, rooms, attempts, violations)
	s.clock = func() time.Time { return now }

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	want := DashboardStats{
		OngoingContests:     1,
		TotalRooms:          3,
		TotalAttempts:       3,
		ActiveAttempts:      2,
		PendingApprovals:    2,
		TotalViolations:     2,
		UnhandledViolations: 1,
	}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}
}
