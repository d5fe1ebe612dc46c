package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"proctor_admin/internal/domain/model"
)

type AuditLogFilter struct {
	Type      model.AuditLogType
	AttemptID *int64
	Limit     int
	Offset    int
}

type AuditLogRepository interface {
	Insert(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int, error)
}

type pgAuditLogRepository struct {
	db *sql.DB
}

func NewPgAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &pgAuditLogRepository{db: db}
}

func (r *pgAuditLogRepository) Insert(ctx context.Context, e *model.AuditLog) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO audit_logs (type, attempt_id, process_id, image_id, alert_id, created_at, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.Type, e.AttemptID, e.ProcessID, e.ImageID, e.AlertID, e.CreatedAt, e.Details,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("pgAuditLogRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgAuditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argID))
		args = append(args, filter.Type)
		argID++
	}
	if filter.AttemptID != nil {
		conditions = append(conditions, fmt.Sprintf("attempt_id = $%d", argID))
		args = append(args, *filter.AttemptID)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgAuditLogRepository.List count: %w", err)
	}

	query := `SELECT id, type, attempt_id, process_id, image_id, alert_id, created_at, details
	          FROM audit_logs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgAuditLogRepository.List: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditLog
	for rows.Next() {
		var e model.AuditLog
		if err := rows.Scan(
			&e.ID, &e.Type, &e.AttemptID, &e.ProcessID, &e.ImageID, &e.AlertID,
			&e.CreatedAt, &e.Details,
		); err != nil {
			return nil, 0, fmt.Errorf("pgAuditLogRepository.List scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
