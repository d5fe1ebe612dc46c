package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Room, error)
	List(ctx context.Context, contestID int64) ([]model.Room, error)
	CountAll(ctx context.Context) (int, error)
}

type pgRoomRepository struct {
	db *sql.DB
}

func NewPgRoomRepository(db *sql.DB) RoomRepository {
	return &pgRoomRepository{db: db}
}

func (r *pgRoomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `INSERT INTO rooms (contest_id, access_code, registration_start_time, registration_end_time,
	            exam_start_time, exam_end_time, capacity, auto_approve)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		room.ContestID, room.AccessCode, room.RegistrationStartTime, room.RegistrationEndTime,
		room.ExamStartTime, room.ExamEndTime, room.Capacity, room.AutoApprove,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRoomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `UPDATE rooms SET
	            access_code = $1, registration_start_time = $2, registration_end_time = $3,
	            exam_start_time = $4, exam_end_time = $5, capacity = $6, auto_approve = $7,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		room.AccessCode, room.RegistrationStartTime, room.RegistrationEndTime,
		room.ExamStartTime, room.ExamEndTime, room.Capacity, room.AutoApprove, room.ID,
	)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgRoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgRoomRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

const roomSelect = `
	SELECT r.id, r.contest_id, r.access_code,
	       r.registration_start_time, r.registration_end_time,
	       r.exam_start_time, r.exam_end_time,
	       r.capacity, r.auto_approve, r.created_at, r.updated_at,
	       c.name AS contest_name,
	       (SELECT COUNT(*) FROM attempts a WHERE a.room_id = r.id) AS attempt_count
	FROM rooms r
	LEFT JOIN contests c ON r.contest_id = c.id`

func (r *pgRoomRepository) FindByID(ctx context.Context, id int64) (*model.Room, error) {
	room := &model.Room{}
	var attemptCount int
	err := r.db.QueryRowContext(ctx, roomSelect+` WHERE r.id = $1`, id).Scan(
		&room.ID, &room.ContestID, &room.AccessCode,
		&room.RegistrationStartTime, &room.RegistrationEndTime,
		&room.ExamStartTime, &room.ExamEndTime,
		&room.Capacity, &room.AutoApprove, &room.CreatedAt, &room.UpdatedAt,
		&room.ContestName, &attemptCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoomRepository.FindByID: %w", err)
	}
	room.FillOccupancy(attemptCount)
	return room, nil
}

// List returns all rooms, or the rooms of one contest when contestID > 0.
func (r *pgRoomRepository) List(ctx context.Context, contestID int64) ([]model.Room, error) {
	query := roomSelect
	var args []interface{}
	if contestID > 0 {
		query += ` WHERE r.contest_id = $1`
		args = append(args, contestID)
	}
	query += ` ORDER BY r.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgRoomRepository.List: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var room model.Room
		var attemptCount int
		if err := rows.Scan(
			&room.ID, &room.ContestID, &room.AccessCode,
			&room.RegistrationStartTime, &room.RegistrationEndTime,
			&room.ExamStartTime, &room.ExamEndTime,
			&room.Capacity, &room.AutoApprove, &room.CreatedAt, &room.UpdatedAt,
			&room.ContestName, &attemptCount,
		); err != nil {
			return nil, fmt.Errorf("pgRoomRepository.List scan: %w", err)
		}
		room.FillOccupancy(attemptCount)
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *pgRoomRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgRoomRepository.CountAll: %w", err)
	}
	return count, nil
}
