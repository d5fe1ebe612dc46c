package service

import (
	"context"
	"errors"
	"strings"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

type RoomService struct {
	roomRepo    repository.RoomRepository
	contestRepo repository.ContestRepository
}

func NewRoomService(roomRepo repository.RoomRepository, contestRepo repository.ContestRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo, contestRepo: contestRepo}
}

// ValidateRoom checks the window and capacity invariants shared by create
// and update.
func ValidateRoom(room *model.Room) error {
	if strings.TrimSpace(room.AccessCode) == "" {
		return common.Errorf("room access code is required: %w", common.ErrValidation)
	}
	if room.Capacity <= 0 {
		return common.Errorf("room capacity must be positive: %w", common.ErrValidation)
	}
	if room.RegistrationStartTime.After(room.RegistrationEndTime) {
		return common.Errorf("registration window start exceeds end: %w", common.ErrValidation)
	}
	if room.ExamStartTime.After(room.ExamEndTime) {
		return common.Errorf("exam window start exceeds end: %w", common.ErrValidation)
	}
	return nil
}

func (s *RoomService) CreateRoom(ctx context.Context, contestID int64, room *model.Room) (*model.Room, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("contest %d not found: %w", contestID, common.ErrBadRequest)
		}
		return nil, err
	}
	room.ContestID = contestID
	if err := ValidateRoom(room); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, common.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, id int64, updated *model.Room) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	room.AccessCode = updated.AccessCode
	room.RegistrationStartTime = updated.RegistrationStartTime
	room.RegistrationEndTime = updated.RegistrationEndTime
	room.ExamStartTime = updated.ExamStartTime
	room.ExamEndTime = updated.ExamEndTime
	room.Capacity = updated.Capacity
	room.AutoApprove = updated.AutoApprove

	if err := ValidateRoom(room); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, common.Errorf("failed to update room: %w", err)
	}
	room.FillOccupancy(room.AttemptCount)
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	return s.roomRepo.Delete(ctx, id)
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	return s.roomRepo.FindByID(ctx, id)
}

func (s *RoomService) ListRooms(ctx context.Context, contestID int64) ([]model.Room, error) {
	return s.roomRepo.List(ctx, contestID)
}
