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

type MessageFilter struct {
	RoomID    int64
	ContestID int64
	Type      model.MessageType
	Limit     int
	Offset    int
}

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id int64) (*model.Message, error)
	List(ctx context.Context, filter MessageFilter) ([]model.Message, int, error)
	Delete(ctx context.Context, id int64) error
}

type pgMessageRepository struct {
	db *sql.DB
}

func NewPgMessageRepository(db *sql.DB) MessageRepository {
	return &pgMessageRepository{db: db}
}

func (r *pgMessageRepository) Create(ctx context.Context, m *model.Message) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (type, title, content, room_id, context_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		m.Type, m.Title, m.Content, m.RoomID, m.ContextID, m.CreatedByID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgMessageRepository.Create: %w", err)
	}
	return nil
}

const messageSelect = `
	SELECT m.id, m.type, m.title, m.content, m.room_id, m.context_id,
	       m.created_by, m.created_at,
	       r.access_code AS room_access_code
	FROM messages m
	LEFT JOIN rooms r ON m.room_id = r.id`

func (r *pgMessageRepository) FindByID(ctx context.Context, id int64) (*model.Message, error) {
	m := &model.Message{}
	err := r.db.QueryRowContext(ctx, messageSelect+` WHERE m.id = $1`, id).Scan(
		&m.ID, &m.Type, &m.Title, &m.Content, &m.RoomID, &m.ContextID,
		&m.CreatedByID, &m.CreatedAt, &m.RoomAccessCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMessageRepository.FindByID: %w", err)
	}
	return m, nil
}

func (r *pgMessageRepository) List(ctx context.Context, filter MessageFilter) ([]model.Message, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.RoomID > 0 {
		// Room-scoped listing still includes broadcasts.
		conditions = append(conditions, fmt.Sprintf("(m.room_id = $%d OR m.room_id IS NULL)", argID))
		args = append(args, filter.RoomID)
		argID++
	}
	if filter.ContestID > 0 {
		conditions = append(conditions, fmt.Sprintf("m.context_id = $%d", argID))
		args = append(args, filter.ContestID)
		argID++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("m.type = $%d", argID))
		args = append(args, filter.Type)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages m`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgMessageRepository.List count: %w", err)
	}

	query := messageSelect + where + fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgMessageRepository.List: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(
			&m.ID, &m.Type, &m.Title, &m.Content, &m.RoomID, &m.ContextID,
			&m.CreatedByID, &m.CreatedAt, &m.RoomAccessCode,
		); err != nil {
			return nil, 0, fmt.Errorf("pgMessageRepository.List scan: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

func (r *pgMessageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgMessageRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
