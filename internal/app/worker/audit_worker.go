package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"proctor_admin/internal/app/service"
	"proctor_admin/internal/domain/model"
	"proctor_admin/internal/domain/repository"
	"proctor_admin/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// AuditWorker drains the audit event queue into the audit_logs table,
// keeping the HTTP path free of trail writes. Events that repeatedly fail
// to persist are dropped after the configured attempt budget.
type AuditWorker struct {
	rdb          *redis.Client
	auditLogRepo repository.AuditLogRepository
}

func NewAuditWorker(rdb *redis.Client, auditLogRepo repository.AuditLogRepository) *AuditWorker {
	return &AuditWorker{rdb: rdb, auditLogRepo: auditLogRepo}
}

func (w *AuditWorker) Start(ctx context.Context) {
	log.Println("Audit worker started, listening to queue:", config.AppConfig.AuditQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Audit worker stopping...")
			return
		default:
			// Blocking pop with a timeout so shutdown is noticed promptly.
			result, err := w.rdb.BRPop(ctx, 5*time.Second, config.AppConfig.AuditQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue // timeout, nothing queued
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue // shutting down, loop sees ctx.Done next
				}
				log.Printf("ERROR: Failed to BRPop from audit queue '%s': %v", config.AppConfig.AuditQueueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// result is [queueName, payload]
			if len(result) < 2 || result[1] == "" {
				log.Println("WARN: BRPop returned empty audit payload.")
				continue
			}
			w.processEvent(ctx, result[1])
		}
	}
}

func (w *AuditWorker) processEvent(ctx context.Context, payload string) {
	var event service.AuditEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("ERROR: Dropping malformed audit event: %v", err)
		return
	}

	entry := &model.AuditLog{
		Type:      event.Type,
		AttemptID: event.AttemptID,
		ProcessID: event.ProcessID,
		ImageID:   event.ImageID,
		AlertID:   event.AlertID,
		CreatedAt: event.CreatedAt,
		Details:   event.Details,
	}
	if err := w.auditLogRepo.Insert(ctx, entry); err != nil {
		log.Printf("ERROR: Failed to persist audit event %s (attempt %d): %v", event.ID, event.Attempts+1, err)
		w.requeueEvent(ctx, event)
		return
	}
	log.Printf("Audit event %s persisted as log entry %d", event.ID, entry.ID)
}

func (w *AuditWorker) requeueEvent(ctx context.Context, event service.AuditEvent) {
	event.Attempts++
	if event.Attempts >= config.AppConfig.AuditMaxAttempts {
		log.Printf("ERROR: Dropping audit event %s after %d attempts", event.ID, event.Attempts)
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: Failed to re-marshal audit event %s: %v", event.ID, err)
		return
	}
	if err := w.rdb.LPush(ctx, config.AppConfig.AuditQueueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to requeue audit event %s: %v", event.ID, err)
	}
}
