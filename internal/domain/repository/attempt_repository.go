package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

type AttemptFilter struct {
	RoomID         int64
	ContestID      int64
	ApprovalStatus model.ApprovalStatus
	Status         model.ExamStatus
	Limit          int
	Offset         int
}

type AttemptRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Attempt, error)
	List(ctx context.Context, filter AttemptFilter) ([]model.Attempt, int, error)
	// DecideApproval flips approval_status from pending to the given terminal
	// state. Returns false when the attempt was not pending (or missing).
	DecideApproval(ctx context.Context, id int64, to model.ApprovalStatus) (bool, error)
	ApprovalStats(ctx context.Context) (model.ApprovalStats, error)
	CountByRoom(ctx context.Context, roomID int64) (int, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.ExamStatus) (int, error)
}

type pgAttemptRepository struct {
	db *sql.DB
}

func NewPgAttemptRepository(db *sql.DB) AttemptRepository {
	return &pgAttemptRepository{db: db}
}

// Student names resolve through the contest roster: room -> contest ->
// candidate_labels matched on std. Unmatched references stay null.
const attemptSelect = `
	SELECT a.id, a.std, a.room_id, a.location, a.status, a.approval_status,
	       a.registered_at, a.started_at, a.ended_at,
	       l.full_name AS student_name,
	       r.access_code AS room_access_code,
	       c.name AS contest_name,
	       (SELECT COUNT(*) FROM violations v WHERE v.attempt_id = a.id) AS violation_count,
	       COALESCE(NOT r.auto_approve, FALSE) AS requires_review
	FROM attempts a
	LEFT JOIN rooms r ON a.room_id = r.id
	LEFT JOIN contests c ON r.contest_id = c.id
	LEFT JOIN candidate_labels l ON l.contest_id = c.id AND l.std = a.std`

func scanAttempt(scanner interface{ Scan(...interface{}) error }, a *model.Attempt) error {
	return scanner.Scan(
		&a.ID, &a.Std, &a.RoomID, &a.Location, &a.Status, &a.ApprovalStatus,
		&a.RegisteredAt, &a.StartedAt, &a.EndedAt,
		&a.StudentName, &a.RoomAccessCode, &a.ContestName,
		&a.ViolationCount, &a.RequiresReview,
	)
}

func (r *pgAttemptRepository) FindByID(ctx context.Context, id int64) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := scanAttempt(r.db.QueryRowContext(ctx, attemptSelect+` WHERE a.id = $1`, id), a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAttemptRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAttemptRepository) List(ctx context.Context, filter AttemptFilter) ([]model.Attempt, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.RoomID > 0 {
		conditions = append(conditions, fmt.Sprintf("a.room_id = $%d", argID))
		args = append(args, filter.RoomID)
		argID++
	}
	if filter.ContestID > 0 {
		conditions = append(conditions, fmt.Sprintf("r.contest_id = $%d", argID))
		args = append(args, filter.ContestID)
		argID++
	}
	if filter.ApprovalStatus != "" {
		conditions = append(conditions, fmt.Sprintf("a.approval_status = $%d", argID))
		args = append(args, filter.ApprovalStatus)
		argID++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM attempts a LEFT JOIN rooms r ON a.room_id = r.id` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgAttemptRepository.List count: %w", err)
	}

	query := attemptSelect + where + fmt.Sprintf(" ORDER BY a.id LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgAttemptRepository.List: %w", err)
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := scanAttempt(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("pgAttemptRepository.List scan: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, total, rows.Err()
}

func (r *pgAttemptRepository) DecideApproval(ctx context.Context, id int64, to model.ApprovalStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE attempts SET approval_status = $2 WHERE id = $1 AND approval_status = 'pending'`,
		id, to,
	)
	if err != nil {
		return false, fmt.Errorf("pgAttemptRepository.DecideApproval: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgAttemptRepository.DecideApproval rows: %w", err)
	}
	return n == 1, nil
}

func (r *pgAttemptRepository) ApprovalStats(ctx context.Context) (model.ApprovalStats, error) {
	var stats model.ApprovalStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE approval_status = 'pending'),
		       COUNT(*) FILTER (WHERE approval_status = 'approved'),
		       COUNT(*) FILTER (WHERE approval_status = 'rejected')
		FROM attempts`,
	).Scan(&stats.Pending, &stats.Approved, &stats.Rejected)
	if err != nil {
		return stats, fmt.Errorf("pgAttemptRepository.ApprovalStats: %w", err)
	}
	return stats, nil
}

func (r *pgAttemptRepository) CountByRoom(ctx context.Context, roomID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts WHERE room_id = $1`, roomID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgAttemptRepository.CountByRoom: %w", err)
	}
	return count, nil
}

func (r *pgAttemptRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgAttemptRepository.CountAll: %w", err)
	}
	return count, nil
}

func (r *pgAttemptRepository) CountByStatus(ctx context.Context, status model.ExamStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgAttemptRepository.CountByStatus: %w", err)
	}
	return count, nil
}
