package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"proctor_admin/internal/domain/model"
)

type ProcessFilter struct {
	AttemptID int64
	Status    model.ProcessStatus
	Limit     int
	Offset    int
}

type ProcessRepository interface {
	// List resolves the blacklisted flag against both the global blacklist
	// and the blacklist of the attempt's contest.
	List(ctx context.Context, filter ProcessFilter) ([]model.Process, int, error)
	Stats(ctx context.Context) (model.ProcessStats, error)
}

type pgProcessRepository struct {
	db *sql.DB
}

func NewPgProcessRepository(db *sql.DB) ProcessRepository {
	return &pgProcessRepository{db: db}
}

const processSelect = `
	SELECT p.id, p.pid, p.name, p.parent_id, p.start_time, p.end_time, p.data, p.attempt_id,
	       EXISTS (
	           SELECT 1 FROM process_blacklist b
	           LEFT JOIN contest_process_blacklist cb ON cb.process_id = b.id
	           LEFT JOIN rooms r ON r.contest_id = cb.contest_id
	           WHERE lower(b.name) = lower(p.name)
	             AND (cb.id IS NULL OR r.id = (SELECT a.room_id FROM attempts a WHERE a.id = p.attempt_id))
	       ) AS blacklisted
	FROM processes p`

func (r *pgProcessRepository) List(ctx context.Context, filter ProcessFilter) ([]model.Process, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.AttemptID > 0 {
		conditions = append(conditions, fmt.Sprintf("p.attempt_id = $%d", argID))
		args = append(args, filter.AttemptID)
		argID++
	}
	switch filter.Status {
	case model.ProcessRunning:
		conditions = append(conditions, "p.end_time IS NULL")
	case model.ProcessStopped:
		conditions = append(conditions, "p.end_time IS NOT NULL")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM processes p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProcessRepository.List count: %w", err)
	}

	query := processSelect + where + fmt.Sprintf(" ORDER BY p.start_time DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProcessRepository.List: %w", err)
	}
	defer rows.Close()

	var processes []model.Process
	for rows.Next() {
		var p model.Process
		if err := rows.Scan(
			&p.ID, &p.PID, &p.Name, &p.ParentID, &p.StartTime, &p.EndTime,
			&p.Data, &p.AttemptID, &p.Blacklisted,
		); err != nil {
			return nil, 0, fmt.Errorf("pgProcessRepository.List scan: %w", err)
		}
		p.Status = p.DeriveStatus()
		processes = append(processes, p)
	}
	return processes, total, rows.Err()
}

func (r *pgProcessRepository) Stats(ctx context.Context) (model.ProcessStats, error) {
	var stats model.ProcessStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE end_time IS NULL),
		       COUNT(*) FILTER (WHERE end_time IS NOT NULL)
		FROM processes`,
	).Scan(&stats.Running, &stats.Stopped)
	if err != nil {
		return stats, fmt.Errorf("pgProcessRepository.Stats: %w", err)
	}
	return stats, nil
}
