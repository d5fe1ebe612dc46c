package repository

import (
	"context"
	"database/sql"
	"fmt"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

type CandidateRepository interface {
	ListByContest(ctx context.Context, contestID int64) ([]model.CandidateLabel, error)
	Add(ctx context.Context, label *model.CandidateLabel) error
	// BulkAdd inserts the labels in one transaction, filling generated ids.
	BulkAdd(ctx context.Context, labels []model.CandidateLabel) ([]model.CandidateLabel, error)
	Remove(ctx context.Context, id int64) error
}

type pgCandidateRepository struct {
	db *sql.DB
}

func NewPgCandidateRepository(db *sql.DB) CandidateRepository {
	return &pgCandidateRepository{db: db}
}

func (r *pgCandidateRepository) ListByContest(ctx context.Context, contestID int64) ([]model.CandidateLabel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, std, full_name, contest_id, user_id, created_at
		FROM candidate_labels
		WHERE contest_id = $1
		ORDER BY id`, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgCandidateRepository.ListByContest: %w", err)
	}
	defer rows.Close()

	var labels []model.CandidateLabel
	for rows.Next() {
		var l model.CandidateLabel
		if err := rows.Scan(&l.ID, &l.Std, &l.FullName, &l.ContestID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgCandidateRepository.ListByContest scan: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (r *pgCandidateRepository) Add(ctx context.Context, l *model.CandidateLabel) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO candidate_labels (std, full_name, contest_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		l.Std, l.FullName, l.ContestID, l.UserID,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgCandidateRepository.Add: %w", err)
	}
	return nil
}

func (r *pgCandidateRepository) BulkAdd(ctx context.Context, labels []model.CandidateLabel) ([]model.CandidateLabel, error) {
	if len(labels) == 0 {
		return labels, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("pgCandidateRepository.BulkAdd begin: %w", err)
	}
	defer tx.Rollback()

	for i := range labels {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO candidate_labels (std, full_name, contest_id, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			labels[i].Std, labels[i].FullName, labels[i].ContestID, labels[i].UserID,
		).Scan(&labels[i].ID, &labels[i].CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("pgCandidateRepository.BulkAdd insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("pgCandidateRepository.BulkAdd commit: %w", err)
	}
	return labels, nil
}

func (r *pgCandidateRepository) Remove(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidate_labels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCandidateRepository.Remove: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
