package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
	"proctor_admin/internal/platform/config"
)

// MonitorService serves the read-mostly reference lists: processes, captured
// screenshots, messages and the audit trail.
type MonitorService struct {
	processRepo  repository.ProcessRepository
	imageRepo    repository.ImageRepository
	messageRepo  repository.MessageRepository
	auditLogRepo repository.AuditLogRepository
	roomRepo     repository.RoomRepository
	audit        AuditRecorder
	clock        func() time.Time
}

func NewMonitorService(
	processRepo repository.ProcessRepository,
	imageRepo repository.ImageRepository,
	messageRepo repository.MessageRepository,
	auditLogRepo repository.AuditLogRepository,
	roomRepo repository.RoomRepository,
	audit AuditRecorder,
) *MonitorService {
	return &MonitorService{
		processRepo:  processRepo,
		imageRepo:    imageRepo,
		messageRepo:  messageRepo,
		auditLogRepo: auditLogRepo,
		roomRepo:     roomRepo,
		audit:        audit,
		clock:        time.Now,
	}
}

func (s *MonitorService) ListProcesses(ctx context.Context, filter repository.ProcessFilter) ([]model.Process, int, error) {
	return s.processRepo.List(ctx, filter)
}

func (s *MonitorService) ProcessStats(ctx context.Context) (model.ProcessStats, error) {
	return s.processRepo.Stats(ctx)
}

// ScreenshotURL is a deterministic placeholder templated from the image id;
// no object storage backs it.
func ScreenshotURL(id int64) string {
	return fmt.Sprintf(config.AppConfig.ScreenshotURLBase, id)
}

func (s *MonitorService) ListImages(ctx context.Context, status model.ImageStatus, limit, offset int) ([]model.Image, int, error) {
	images, total, err := s.imageRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range images {
		images[i].URL = ScreenshotURL(images[i].ID)
	}
	return images, total, nil
}

func (s *MonitorService) DeleteImage(ctx context.Context, operatorID, id int64) error {
	if err := s.imageRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEvent{
		Type:       model.AuditAction,
		ImageID:    &id,
		OperatorID: operatorID,
		Details:    fmt.Sprintf("screenshot %d deleted by operator %d", id, operatorID),
		CreatedAt:  s.clock(),
	})
	return nil
}

type CreateMessageRequest struct {
	Type      model.MessageType `json:"type"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	RoomID    *int64            `json:"room_id,omitempty"` // nil broadcasts
	ContextID *int64            `json:"context_id,omitempty"`
}

func (s *MonitorService) CreateMessage(ctx context.Context, operatorID int64, req CreateMessageRequest) (*model.Message, error) {
	if !req.Type.Valid() {
		return nil, common.Errorf("invalid message type %q: %w", req.Type, common.ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, common.Errorf("message content is required: %w", common.ErrValidation)
	}
	if req.RoomID != nil {
		if _, err := s.roomRepo.FindByID(ctx, *req.RoomID); err != nil {
			return nil, common.Errorf("room %d not found: %w", *req.RoomID, common.ErrBadRequest)
		}
	}

	message := &model.Message{
		Type:        req.Type,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		RoomID:      req.RoomID,
		ContextID:   req.ContextID,
		CreatedByID: operatorID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, common.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

func (s *MonitorService) ListMessages(ctx context.Context, filter repository.MessageFilter) ([]model.Message, int, error) {
	return s.messageRepo.List(ctx, filter)
}

func (s *MonitorService) DeleteMessage(ctx context.Context, id int64) error {
	return s.messageRepo.Delete(ctx, id)
}

func (s *MonitorService) ListAuditLogs(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, int, error) {
	return s.auditLogRepo.List(ctx, filter)
}
