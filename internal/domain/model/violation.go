package model

import "time"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Violation records a suspected misconduct incident tied to an attempt.
// HandledAt and HandledBy are set exactly when Handled flips to true.
type Violation struct {
	ID           int64      `json:"id"`
	Severity     Severity   `json:"severity"`
	Text         string     `json:"text"`
	Handled      bool       `json:"handled"`
	HandledAt    *time.Time `json:"handled_at,omitempty"`
	HandledBy    *int64     `json:"handled_by,omitempty"`
	AttemptID    int64      `json:"attempt_id"`
	AlertID      *int64     `json:"alert_id,omitempty"`
	CreatedBy    int64      `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LogStartTime time.Time  `json:"log_start_time"`
	LogEndTime   time.Time  `json:"log_end_time"`

	StudentName *string `json:"student_name,omitempty"` // For display
	AlertName   *string `json:"alert_name,omitempty"`   // For display
}

type ViolationStats struct {
	Total        int `json:"total"`
	Unhandled    int `json:"unhandled"`
	HighSeverity int `json:"high_severity"`
}
