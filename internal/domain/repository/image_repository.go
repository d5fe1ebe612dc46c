package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

type ImageRepository interface {
	List(ctx context.Context, status model.ImageStatus, limit, offset int) ([]model.Image, int, error)
	FindByID(ctx context.Context, id int64) (*model.Image, error)
	// SoftDelete moves an active image to deleted status.
	SoftDelete(ctx context.Context, id int64) error
}

type pgImageRepository struct {
	db *sql.DB
}

func NewPgImageRepository(db *sql.DB) ImageRepository {
	return &pgImageRepository{db: db}
}

func (r *pgImageRepository) List(ctx context.Context, status model.ImageStatus, limit, offset int) ([]model.Image, int, error) {
	where := ""
	var args []interface{}
	argID := 1
	if status != "" {
		where = fmt.Sprintf(" WHERE status = $%d", argID)
		args = append(args, status)
		argID++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgImageRepository.List count: %w", err)
	}

	query := `SELECT id, text, created_at, meta, status FROM images` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgImageRepository.List: %w", err)
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID, &img.Text, &img.CreatedAt, &img.Meta, &img.Status); err != nil {
			return nil, 0, fmt.Errorf("pgImageRepository.List scan: %w", err)
		}
		images = append(images, img)
	}
	return images, total, rows.Err()
}

func (r *pgImageRepository) FindByID(ctx context.Context, id int64) (*model.Image, error) {
	img := &model.Image{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, text, created_at, meta, status FROM images WHERE id = $1`, id,
	).Scan(&img.ID, &img.Text, &img.CreatedAt, &img.Meta, &img.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgImageRepository.FindByID: %w", err)
	}
	return img, nil
}

func (r *pgImageRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE images SET status = 'deleted' WHERE id = $1 AND status = 'active'`, id,
	)
	if err != nil {
		return fmt.Errorf("pgImageRepository.SoftDelete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
