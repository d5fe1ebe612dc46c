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

	"github.com/jackc/pgx/v5/pgconn"
)

type ContestRepository interface {
	Create(ctx context.Context, contest *model.Contest) error
	Update(ctx context.Context, contest *model.Contest) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Contest, error)
	FindBySlug(ctx context.Context, slug string) (*model.Contest, error)
	List(ctx context.Context, limit, offset int, searchTerm string) ([]model.Contest, int, error)
	CountOngoing(ctx context.Context, now time.Time) (int, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

func (r *pgContestRepository) Create(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO contests (name, slug, description, start_time, end_time, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Slug, c.Description, c.StartTime, c.EndTime, c.CreatedByID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("contest with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgContestRepository) Update(ctx context.Context, c *model.Contest) error {
	query := `UPDATE contests SET
	            name = $1, slug = $2, description = $3, start_time = $4, end_time = $5,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Slug, c.Description, c.StartTime, c.EndTime, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("contest with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgContestRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgContestRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

const contestSelect = `
	SELECT c.id, c.name, c.slug, c.description, c.start_time, c.end_time,
	       c.created_by, u.username AS created_by_username,
	       c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM rooms r WHERE r.contest_id = c.id) AS room_count,
	       (SELECT COUNT(*) FROM candidate_labels l WHERE l.contest_id = c.id) AS candidate_count
	FROM contests c
	LEFT JOIN users u ON c.created_by = u.id`

func (r *pgContestRepository) scanContest(row *sql.Row) (*model.Contest, error) {
	c := &model.Contest{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.StartTime, &c.EndTime,
		&c.CreatedByID, &c.CreatedByUsername, &c.CreatedAt, &c.UpdatedAt,
		&c.RoomCount, &c.CandidateCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *pgContestRepository) FindByID(ctx context.Context, id int64) (*model.Contest, error) {
	c, err := r.scanContest(r.db.QueryRowContext(ctx, contestSelect+` WHERE c.id = $1`, id))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgContestRepository.FindByID: %w", err)
	}
	return c, err
}

func (r *pgContestRepository) FindBySlug(ctx context.Context, slug string) (*model.Contest, error) {
	c, err := r.scanContest(r.db.QueryRowContext(ctx, contestSelect+` WHERE c.slug = $1`, slug))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgContestRepository.FindBySlug: %w", err)
	}
	return c, err
}

func (r *pgContestRepository) List(ctx context.Context, limit, offset int, searchTerm string) ([]model.Contest, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if searchTerm != "" {
		conditions = append(conditions, fmt.Sprintf("(c.name ILIKE $%d OR c.description ILIKE $%d)", argID, argID+1))
		likeTerm := "%" + searchTerm + "%"
		args = append(args, likeTerm, likeTerm)
		argID += 2
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM contests c` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.List count: %w", err)
	}

	query := contestSelect + where + fmt.Sprintf(" ORDER BY c.start_time DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.List: %w", err)
	}
	defer rows.Close()

	var contests []model.Contest
	for rows.Next() {
		var c model.Contest
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.StartTime, &c.EndTime,
			&c.CreatedByID, &c.CreatedByUsername, &c.CreatedAt, &c.UpdatedAt,
			&c.RoomCount, &c.CandidateCount,
		); err != nil {
			return nil, 0, fmt.Errorf("pgContestRepository.List scan: %w", err)
		}
		contests = append(contests, c)
	}
	return contests, total, rows.Err()
}

func (r *pgContestRepository) CountOngoing(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contests WHERE start_time <= $1 AND end_time >= $1`, now,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.CountOngoing: %w", err)
	}
	return count, nil
}
