package service

import (
	"context"
	"strings"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
)

// SettingsService covers operator accounts, the alert taxonomy and the
// process blacklist.
type SettingsService struct {
	userRepo      repository.UserRepository
	alertRepo     repository.AlertRepository
	blacklistRepo repository.BlacklistRepository
	contestRepo   repository.ContestRepository
}

func NewSettingsService(
	userRepo repository.UserRepository,
	alertRepo repository.AlertRepository,
	blacklistRepo repository.BlacklistRepository,
	contestRepo repository.ContestRepository,
) *SettingsService {
	return &SettingsService{
		userRepo:      userRepo,
		alertRepo:     alertRepo,
		blacklistRepo: blacklistRepo,
		contestRepo:   contestRepo,
	}
}

type UserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

func validateUser(req UserRequest) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" {
		return common.Errorf("username and email are required: %w", common.ErrValidation)
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleExaminer {
		return common.Errorf("invalid role %q: %w", req.Role, common.ErrValidation)
	}
	return nil
}

func (s *SettingsService) CreateUser(ctx context.Context, req UserRequest) (*model.User, error) {
	if err := validateUser(req); err != nil {
		return nil, err
	}
	user := &model.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Role:     req.Role,
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, common.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *SettingsService) UpdateUser(ctx context.Context, id int64, req UserRequest) (*model.User, error) {
	if err := validateUser(req); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Username = strings.TrimSpace(req.Username)
	user.Email = strings.TrimSpace(req.Email)
	user.Role = req.Role
	user.FullName = strings.TrimSpace(req.FullName)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, common.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *SettingsService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *SettingsService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *SettingsService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *SettingsService) ListAlerts(ctx context.Context) ([]model.Alert, error) {
	return s.alertRepo.List(ctx)
}

func (s *SettingsService) CreateBlacklistEntry(ctx context.Context, entry *model.BlacklistEntry) (*model.BlacklistEntry, error) {
	if strings.TrimSpace(entry.Name) == "" {
		return nil, common.Errorf("process name is required: %w", common.ErrValidation)
	}
	entry.Name = strings.TrimSpace(entry.Name)
	if err := s.blacklistRepo.Create(ctx, entry); err != nil {
		return nil, common.Errorf("failed to create blacklist entry: %w", err)
	}
	return entry, nil
}

func (s *SettingsService) DeleteBlacklistEntry(ctx context.Context, id int64) error {
	return s.blacklistRepo.Delete(ctx, id)
}

func (s *SettingsService) ListBlacklist(ctx context.Context) ([]model.BlacklistEntry, error) {
	return s.blacklistRepo.List(ctx)
}

func (s *SettingsService) ContestBlacklist(ctx context.Context, contestID int64) ([]model.BlacklistEntry, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}
	return s.blacklistRepo.ListByContest(ctx, contestID)
}

func (s *SettingsService) AttachBlacklistEntry(ctx context.Context, contestID, entryID int64) error {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return err
	}
	return s.blacklistRepo.AttachToContest(ctx, entryID, contestID)
}

func (s *SettingsService) DetachBlacklistEntry(ctx context.Context, contestID, entryID int64) error {
	return s.blacklistRepo.DetachFromContest(ctx, entryID, contestID)
}
