package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

type memAttemptRepo struct {
	attempts map[int64]*model.Attempt
}

func newMemAttemptRepo(attempts ...*model.Attempt) *memAttemptRepo {
	repo := &memAttemptRepo{attempts: make(map[int64]*model.Attempt)}
	for _, a := range attempts {
		repo.attempts[a.ID] = a
	}
	return repo
}

func (r *memAttemptRepo) FindByID(_ context.Context, id int64) (*model.Attempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *attempt
	return &copied, nil
}

func (r *memAttemptRepo) List(_ context.Context, _ repository.AttemptFilter) ([]model.Attempt, int, error) {
	var out []model.Attempt
	for _, a := range r.attempts {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (r *memAttemptRepo) DecideApproval(_ context.Context, id int64, to model.ApprovalStatus) (bool, error) {
	attempt, ok := r.attempts[id]
	if !ok || attempt.ApprovalStatus != model.ApprovalPending {
		return false, nil
	}
	attempt.ApprovalStatus = to
	return true, nil
}

func (r *memAttemptRepo) ApprovalStats(_ context.Context) (model.ApprovalStats, error) {
	var stats model.ApprovalStats
	for _, a := range r.attempts {
		switch a.ApprovalStatus {
		case model.ApprovalPending:
			stats.Pending++
		case model.ApprovalApproved:
			stats.Approved++
		case model.ApprovalRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (r *memAttemptRepo) CountByRoom(_ context.Context, roomID int64) (int, error) {
	n := 0
	for _, a := range r.attempts {
		if a.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (r *memAttemptRepo) CountAll(_ context.Context) (int, error) {
	return len(r.attempts), nil
}

func (r *memAttemptRepo) CountByStatus(_ context.Context, status model.ExamStatus) (int, error) {
	n := 0
	for _, a := range r.attempts {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

type recordingAudit struct {
	events []AuditEvent
}

func (a *recordingAudit) Record(_ context.Context, event AuditEvent) {
	a.events = append(a.events, event)
}

func newAttemptService(repo repository.AttemptRepository, audit AuditRecorder, now time.Time) *AttemptService {
	s := NewAttemptService(repo, audit)
	s.clock = func() time.Time { return now }
	return s
}

func TestApprovePendingAttempt(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newMemAttemptRepo(&model.Attempt{ID: 1, ApprovalStatus: model.ApprovalPending})
	audit := &recordingAudit{}
	s := newAttemptService(repo, audit, now)

	attempt, err := s.Approve(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if attempt.ApprovalStatus != model.ApprovalApproved {
		t.Fatalf("approval status = %s, want approved", attempt.ApprovalStatus)
	}
	if len(audit.events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(audit.events))
	}
	if audit.events[0].OperatorID != 7 {
		t.Errorf("audit operator = %d, want 7", audit.events[0].OperatorID)
	}
	if !audit.events[0].CreatedAt.Equal(now) {
		t.Errorf("audit timestamp = %v, want %v", audit.events[0].CreatedAt, now)
	}
}

func TestRejectPendingAttempt(t *testing.T) {
	repo := newMemAttemptRepo(&model.Attempt{ID: 4, ApprovalStatus: model.ApprovalPending})
	s := newAttemptService(repo, &recordingAudit{}, time.Now())

	attempt, err := s.Reject(context.Background(), 7, 4)
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if attempt.ApprovalStatus != model.ApprovalRejected {
		t.Fatalf("approval status = %s, want rejected", attempt.ApprovalStatus)
	}
}

func TestApproveIsOneWay(t *testing.T) {
	repo := newMemAttemptRepo(&model.Attempt{ID: 1, ApprovalStatus: model.ApprovalPending})
	audit := &recordingAudit{}
	s := newAttemptService(repo, audit, time.Now())

	if _, err := s.Approve(context.Background(), 7, 1); err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}
	if _, err := s.Approve(context.Background(), 7, 1); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("second Approve() error = %v, want ErrConflict", err)
	}
	if len(audit.events) != 1 {
		t.Fatalf("audit events = %d, want 1 (conflicts must not record)", len(audit.events))
	}
}

func TestRejectedAttemptStaysRejected(t *testing.T) {
	repo := newMemAttemptRepo(&model.Attempt{ID: 2, ApprovalStatus: model.ApprovalPending})
	s := newAttemptService(repo, &recordingAudit{}, time.Now())

	if _, err := s.Reject(context.Background(), 7, 2); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	_, err := s.Approve(context.Background(), 7, 2)
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("Approve() after reject error = %v, want ErrConflict", err)
	}

	attempt, err := s.GetAttempt(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetAttempt() error = %v", err)
	}
	if attempt.ApprovalStatus != model.ApprovalRejected {
		t.Fatalf("approval status = %s, want rejected", attempt.ApprovalStatus)
	}
}

func TestDecideMissingAttempt(t *testing.T) {
	s := newAttemptService(newMemAttemptRepo(), &recordingAudit{}, time.Now())

	if _, err := s.Approve(context.Background(), 7, 99); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Approve() on missing attempt error = %v, want ErrNotFound", err)
	}
}

func TestApprovalDoesNotTouchExamStatus(t *testing.T) {
	repo := newMemAttemptRepo(&model.Attempt{ID: 3, Status: model.ExamActive, ApprovalStatus: model.ApprovalPending})
	s := newAttemptService(repo, &recordingAudit{}, time.Now())

	attempt, err := s.Approve(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if attempt.Status != model.ExamActive {
		t.Fatalf("exam status = %s, want active (unchanged)", attempt.Status)
	}
}
