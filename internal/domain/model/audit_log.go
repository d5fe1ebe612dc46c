package model

import "time"

type AuditLogType string

const (
	AuditLogin  AuditLogType = "login"
	AuditLogout AuditLogType = "logout"
	AuditAction AuditLogType = "action"
)

// AuditLog is an append-only trail entry. References to attempts, processes,
// images and alerts are weak lookups that may be absent or dangle; a nil
// AttemptID marks a system-level entry.
type AuditLog struct {
	ID        int64        `json:"id"`
	Type      AuditLogType `json:"type"`
	AttemptID *int64       `json:"attempt_id,omitempty"`
	ProcessID *int64       `json:"process_id,omitempty"`
	ImageID   *int64       `json:"image_id,omitempty"`
	AlertID   *int64       `json:"alert_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Details   string       `json:"details"`
}
