package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AuditEvent is the queue envelope for one audit trail entry. Operator
// actions enqueue these; the audit worker drains them into the audit_logs
// table so request latency never depends on the trail write.
type AuditEvent struct {
	ID         string             `json:"id"`
	Type       model.AuditLogType `json:"type"`
	AttemptID  *int64             `json:"attempt_id,omitempty"`
	ProcessID  *int64             `json:"process_id,omitempty"`
	ImageID    *int64             `json:"image_id,omitempty"`
	AlertID    *int64             `json:"alert_id,omitempty"`
	OperatorID int64              `json:"operator_id"`
	Details    string             `json:"details"`
	CreatedAt  time.Time          `json:"created_at"`
	Attempts   int                `json:"attempts"`
}

// AuditRecorder is the seam services use to emit audit events. Recording is
// best-effort: a lost event must never fail the operator's action.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}

type AuditService struct {
	rdb *redis.Client
}

func NewAuditService(rdb *redis.Client) *AuditService {
	return &AuditService{rdb: rdb}
}

func (s *AuditService) Record(ctx context.Context, event AuditEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: Failed to marshal audit event %s: %v", event.ID, err)
		return
	}
	if err := s.rdb.LPush(ctx, config.AppConfig.AuditQueueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to enqueue audit event %s: %v", event.ID, err)
	}
}
