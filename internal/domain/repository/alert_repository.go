package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

// AlertRepository reads the static violation taxonomy. Entries are written
// only by the startup seed.
type AlertRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Alert, error)
	List(ctx context.Context) ([]model.Alert, error)
}

type pgAlertRepository struct {
	db *sql.DB
}

func NewPgAlertRepository(db *sql.DB) AlertRepository {
	return &pgAlertRepository{db: db}
}

func (r *pgAlertRepository) FindByID(ctx context.Context, id int64) (*model.Alert, error) {
	a := &model.Alert{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, code, name, description, severity, updated_at
		FROM alerts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.Severity, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAlertRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAlertRepository) List(ctx context.Context) ([]model.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, name, description, severity, updated_at
		FROM alerts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("pgAlertRepository.List: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var a model.Alert
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.Severity, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgAlertRepository.List scan: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
