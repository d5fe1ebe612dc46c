package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

type ViolationFilter struct {
	AttemptID int64
	Severity  model.Severity
	Handled   *bool
	Limit     int
	Offset    int
}

type ViolationRepository interface {
	Create(ctx context.Context, violation *model.Violation) error
	FindByID(ctx context.Context, id int64) (*model.Violation, error)
	List(ctx context.Context, filter ViolationFilter) ([]model.Violation, int, error)
	// MarkHandled flips handled from false to true, stamping handled_at and
	// handled_by. Returns false when the violation was already handled (or
	// missing).
	MarkHandled(ctx context.Context, id, handledBy int64, handledAt time.Time) (bool, error)
	Stats(ctx context.Context) (model.ViolationStats, error)
	CountByAttempt(ctx context.Context, attemptID int64) (int, error)
}

type pgViolationRepository struct {
	db *sql.DB
}

func NewPgViolationRepository(db *sql.DB) ViolationRepository {
	return &pgViolationRepository{db: db}
}

func (r *pgViolationRepository) Create(ctx context.Context, v *model.Violation) error {
	query := `INSERT INTO violations
	            (severity, text, attempt_id, alert_id, created_by, log_start_time, log_end_time)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, handled, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		v.Severity, v.Text, v.AttemptID, v.AlertID, v.CreatedBy, v.LogStartTime, v.LogEndTime,
	).Scan(&v.ID, &v.Handled, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgViolationRepository.Create: %w", err)
	}
	return nil
}

const violationSelect = `
	SELECT v.id, v.severity, v.text, v.handled, v.handled_at, v.handled_by,
	       v.attempt_id, v.alert_id, v.created_by, v.created_at, v.updated_at,
	       v.log_start_time, v.log_end_time,
	       l.full_name AS student_name,
	       al.name AS alert_name
	FROM violations v
	LEFT JOIN attempts a ON v.attempt_id = a.id
	LEFT JOIN rooms r ON a.room_id = r.id
	LEFT JOIN candidate_labels l ON l.contest_id = r.contest_id AND l.std = a.std
	LEFT JOIN alerts al ON v.alert_id = al.id`

func scanViolation(scanner interface{ Scan(...interface{}) error }, v *model.Violation) error {
	return scanner.Scan(
		&v.ID, &v.Severity, &v.Text, &v.Handled, &v.HandledAt, &v.HandledBy,
		&v.AttemptID, &v.AlertID, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt,
		&v.LogStartTime, &v.LogEndTime,
		&v.StudentName, &v.AlertName,
	)
}

func (r *pgViolationRepository) FindByID(ctx context.Context, id int64) (*model.Violation, error) {
	v := &model.Violation{}
	err := scanViolation(r.db.QueryRowContext(ctx, violationSelect+` WHERE v.id = $1`, id), v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgViolationRepository.FindByID: %w", err)
	}
	return v, nil
}

func (r *pgViolationRepository) List(ctx context.Context, filter ViolationFilter) ([]model.Violation, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.AttemptID > 0 {
		conditions = append(conditions, fmt.Sprintf("v.attempt_id = $%d", argID))
		args = append(args, filter.AttemptID)
		argID++
	}
	if filter.Severity != "" {
		conditions = append(conditions, fmt.Sprintf("v.severity = $%d", argID))
		args = append(args, filter.Severity)
		argID++
	}
	if filter.Handled != nil {
		conditions = append(conditions, fmt.Sprintf("v.handled = $%d", argID))
		args = append(args, *filter.Handled)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM violations v` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgViolationRepository.List count: %w", err)
	}

	query := violationSelect + where + fmt.Sprintf(" ORDER BY v.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgViolationRepository.List: %w", err)
	}
	defer rows.Close()

	var violations []model.Violation
	for rows.Next() {
		var v model.Violation
		if err := scanViolation(rows, &v); err != nil {
			return nil, 0, fmt.Errorf("pgViolationRepository.List scan: %w", err)
		}
		violations = append(violations, v)
	}
	return violations, total, rows.Err()
}

func (r *pgViolationRepository) MarkHandled(ctx context.Context, id, handledBy int64, handledAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE violations
		SET handled = TRUE, handled_at = $2, handled_by = $3, updated_at = $2
		WHERE id = $1 AND handled = FALSE`,
		id, handledAt, handledBy,
	)
	if err != nil {
		return false, fmt.Errorf("pgViolationRepository.MarkHandled: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgViolationRepository.MarkHandled rows: %w", err)
	}
	return n == 1, nil
}

func (r *pgViolationRepository) Stats(ctx context.Context) (model.ViolationStats, error) {
	var stats model.ViolationStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT handled),
		       COUNT(*) FILTER (WHERE severity = 'high')
		FROM violations`,
	).Scan(&stats.Total, &stats.Unhandled, &stats.HighSeverity)
	if err != nil {
		return stats, fmt.Errorf("pgViolationRepository.Stats: %w", err)
	}
	return stats, nil
}

func (r *pgViolationRepository) CountByAttempt(ctx context.Context, attemptID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM violations WHERE attempt_id = $1`, attemptID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgViolationRepository.CountByAttempt: %w", err)
	}
	return count, nil
}
