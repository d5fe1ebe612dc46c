package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"proctor_admin/internal/common"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
	"proctor_admin/internal/platform/config"
)

type memMessageRepo struct {
	messages map[int64]*model.Message
	nextID   int64
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{messages: make(map[int64]*model.Message), nextID: 1}
}

func (r *memMessageRepo) Create(_ context.Context, message *model.Message) error {
	message.ID = r.nextID
	r.nextID++
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *memMessageRepo) FindByID(_ context.Context, id int64) (*model.Message, error) {
	message, ok := r.messages[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *message
	return &copied, nil
}

func (r *memMessageRepo) List(_ context.Context, _ repository.MessageFilter) ([]model.Message, int, error) {
	var out []model.Message
	for _, m := range r.messages {
		out = append(out, *m)
	}
	return out, len(out), nil
}

func (r *memMessageRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.messages[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}

type memImageRepo struct {
	images map[int64]*model.Image
}

func newMemImageRepo(images ...*model.Image) *memImageRepo {
	repo := &memImageRepo{images: make(map[int64]*model.Image)}
	for _, img := range images {
		repo.images[img.ID] = img
	}
	return repo
}

func (r *memImageRepo) List(_ context.Context, status model.ImageStatus, _, _ int) ([]model.Image, int, error) {
	var out []model.Image
	for _, img := range r.images {
		if status == "" || img.Status == status {
			out = append(out, *img)
		}
	}
	return out, len(out), nil
}

func (r *memImageRepo) FindByID(_ context.Context, id int64) (*model.Image, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *img
	return &copied, nil
}

func (r *memImageRepo) SoftDelete(_ context.Context, id int64) error {
	img, ok := r.images[id]
	if !ok || img.Status != model.ImageActive {
		return common.ErrNotFound
	}
	img.Status = model.ImageDeleted
	return nil
}

func newMonitorService(messageRepo repository.MessageRepository, imageRepo repository.ImageRepository, roomRepo repository.RoomRepository, audit AuditRecorder) *MonitorService {
	return NewMonitorService(nil, imageRepo, messageRepo, nil, roomRepo, audit)
}

func setScreenshotBase(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{ScreenshotURLBase: "https://placehold.co/640x360?text=capture-%d"}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestCreateMessageBroadcast(t *testing.T) {
	messages := newMemMessageRepo()
	s := newMonitorService(messages, newMemImageRepo(), newMemRoomRepo(), &recordingAudit{})

	message, err := s.CreateMessage(context.Background(), 7, CreateMessageRequest{
		Type:    model.MessageInfo,
		Title:   "Break",
		Content: "15 minute break after section A",
	})
	if err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}
	if message.RoomID != nil {
		t.Fatalf("room_id = %v, want nil broadcast", message.RoomID)
	}
	if message.CreatedByID != 7 {
		t.Fatalf("created_by = %d, want 7", message.CreatedByID)
	}
}

func TestCreateMessageUnknownRoom(t *testing.T) {
	roomID := int64(9)
	s := newMonitorService(newMemMessageRepo(), newMemImageRepo(), newMemRoomRepo(), &recordingAudit{})

	_, err := s.CreateMessage(context.Background(), 7, CreateMessageRequest{
		Type:    model.MessageWarning,
		Content: "x",
		RoomID:  &roomID,
	})
	if !errors.Is(err, common.ErrBadRequest) {
		t.Fatalf("CreateMessage() error = %v, want ErrBadRequest", err)
	}
}

func TestCreateMessageValidation(t *testing.T) {
	s := newMonitorService(newMemMessageRepo(), newMemImageRepo(), newMemRoomRepo(), &recordingAudit{})

	if _, err := s.CreateMessage(context.Background(), 7, CreateMessageRequest{Type: "shout", Content: "x"}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("bad type error = %v, want ErrValidation", err)
	}
	if _, err := s.CreateMessage(context.Background(), 7, CreateMessageRequest{Type: model.MessageInfo, Content: "  "}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("blank content error = %v, want ErrValidation", err)
	}
}

func TestListImagesFillsURLs(t *testing.T) {
	setScreenshotBase(t)
	images := newMemImageRepo(&model.Image{ID: 12, Status: model.ImageActive})
	s := newMonitorService(newMemMessageRepo(), images, newMemRoomRepo(), &recordingAudit{})

	out, _, err := s.ListImages(context.Background(), model.ImageActive, 20, 0)
	if err != nil {
		t.Fatalf("ListImages() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("images = %d, want 1", len(out))
	}
	if out[0].URL != "https://placehold.co/640x360?text=capture-12" {
		t.Fatalf("url = %q", out[0].URL)
	}
}

func TestDeleteImageIsSoftAndAudited(t *testing.T) {
	images := newMemImageRepo(&model.Image{ID: 12, Status: model.ImageActive})
	audit := &recordingAudit{}
	s := newMonitorService(newMemMessageRepo(), images, newMemRoomRepo(), audit)
	s.clock = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }

	if err := s.DeleteImage(context.Background(), 7, 12); err != nil {
		t.Fatalf("DeleteImage() error = %v", err)
	}
	img, err := images.FindByID(context.Background(), 12)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if img.Status != model.ImageDeleted {
		t.Fatalf("status = %s, want deleted", img.Status)
	}
	if len(audit.events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(audit.events))
	}

	// Deleting again finds no active row.
	if err := s.DeleteImage(context.Background(), 7, 12); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("second DeleteImage() error = %v, want ErrNotFound", err)
	}
}
