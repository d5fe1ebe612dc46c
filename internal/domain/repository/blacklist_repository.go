package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type BlacklistRepository interface {
	Create(ctx context.Context, entry *model.BlacklistEntry) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.BlacklistEntry, error)
	ListByContest(ctx context.Context, contestID int64) ([]model.BlacklistEntry, error)
	AttachToContest(ctx context.Context, entryID, contestID int64) error
	DetachFromContest(ctx context.Context, entryID, contestID int64) error
}

type pgBlacklistRepository struct {
	db *sql.DB
}

func NewPgBlacklistRepository(db *sql.DB) BlacklistRepository {
	return &pgBlacklistRepository{db: db}
}

func (r *pgBlacklistRepository) Create(ctx context.Context, e *model.BlacklistEntry) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO process_blacklist (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		e.Name, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("process name already blacklisted: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgBlacklistRepository.Create: %w", err)
	}
	return nil
}

func (r *pgBlacklistRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM process_blacklist WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgBlacklistRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBlacklistRepository) List(ctx context.Context) ([]model.BlacklistEntry, error) {
	return r.query(ctx, `
		SELECT id, name, description, created_at
		FROM process_blacklist ORDER BY name`)
}

func (r *pgBlacklistRepository) ListByContest(ctx context.Context, contestID int64) ([]model.BlacklistEntry, error) {
	return r.query(ctx, `
		SELECT b.id, b.name, b.description, b.created_at
		FROM process_blacklist b
		JOIN contest_process_blacklist cb ON cb.process_id = b.id
		WHERE cb.contest_id = $1
		ORDER BY b.name`, contestID)
}

func (r *pgBlacklistRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.BlacklistEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgBlacklistRepository query: %w", err)
	}
	defer rows.Close()

	var entries []model.BlacklistEntry
	for rows.Next() {
		var e model.BlacklistEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgBlacklistRepository scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *pgBlacklistRepository) AttachToContest(ctx context.Context, entryID, contestID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contest_process_blacklist (process_id, contest_id)
		VALUES ($1, $2)
		ON CONFLICT (process_id, contest_id) DO NOTHING`,
		entryID, contestID,
	)
	if err != nil {
		return fmt.Errorf("pgBlacklistRepository.AttachToContest: %w", err)
	}
	return nil
}

func (r *pgBlacklistRepository) DetachFromContest(ctx context.Context, entryID, contestID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM contest_process_blacklist WHERE process_id = $1 AND contest_id = $2`,
		entryID, contestID,
	)
	if err != nil {
		return fmt.Errorf("pgBlacklistRepository.DetachFromContest: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
