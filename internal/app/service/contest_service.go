package service

import (
	"context"
	"strings"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"

	"github.com/gosimple/slug"
)

type ContestService struct {
	contestRepo repository.ContestRepository
	roomRepo    repository.RoomRepository
	clock       func() time.Time
}

func NewContestService(contestRepo repository.ContestRepository, roomRepo repository.RoomRepository) *ContestService {
	return &ContestService{
		contestRepo: contestRepo,
		roomRepo:    roomRepo,
		clock:       time.Now,
	}
}

type ContestRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

func (s *ContestService) validate(req ContestRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return common.Errorf("contest name is required: %w", common.ErrValidation)
	}
	if !req.StartTime.Before(req.EndTime) {
		return common.Errorf("contest start time must precede end time: %w", common.ErrValidation)
	}
	return nil
}

func (s *ContestService) CreateContest(ctx context.Context, operatorID int64, req ContestRequest) (*model.Contest, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	contest := &model.Contest{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedByID: &operatorID,
	}
	if err := s.contestRepo.Create(ctx, contest); err != nil {
		return nil, common.Errorf("failed to create contest: %w", err)
	}
	contest.Status = contest.StatusAt(s.clock())
	return contest, nil
}

func (s *ContestService) UpdateContest(ctx context.Context, id int64, req ContestRequest) (*model.Contest, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	contest, err := s.contestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contest.Name = strings.TrimSpace(req.Name)
	contest.Slug = slug.Make(req.Name)
	contest.Description = req.Description
	contest.StartTime = req.StartTime
	contest.EndTime = req.EndTime

	if err := s.contestRepo.Update(ctx, contest); err != nil {
		return nil, common.Errorf("failed to update contest: %w", err)
	}
	contest.Status = contest.StatusAt(s.clock())
	return contest, nil
}

func (s *ContestService) DeleteContest(ctx context.Context, id int64) error {
	return s.contestRepo.Delete(ctx, id)
}

func (s *ContestService) GetContest(ctx context.Context, id int64) (*model.Contest, error) {
	contest, err := s.contestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contest.Status = contest.StatusAt(s.clock())
	return contest, nil
}

func (s *ContestService) GetContestBySlug(ctx context.Context, contestSlug string) (*model.Contest, error) {
	contest, err := s.contestRepo.FindBySlug(ctx, contestSlug)
	if err != nil {
		return nil, err
	}
	contest.Status = contest.StatusAt(s.clock())
	return contest, nil
}

func (s *ContestService) ListContests(ctx context.Context, limit, offset int, searchTerm string) ([]model.Contest, int, error) {
	contests, total, err := s.contestRepo.List(ctx, limit, offset, searchTerm)
	if err != nil {
		return nil, 0, err
	}
	now := s.clock()
	for i := range contests {
		contests[i].Status = contests[i].StatusAt(now)
	}
	return contests, total, nil
}

// ContestRooms lists a contest's rooms with occupancy filled in.
func (s *ContestService) ContestRooms(ctx context.Context, contestID int64) ([]model.Room, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}
	return s.roomRepo.List(ctx, contestID)
}
