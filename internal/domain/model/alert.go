package model

import "time"

type AlertCode string

const (
	AlertWarning  AlertCode = "warning"
	AlertCritical AlertCode = "critical"
)

// Alert is a static taxonomy entry describing a category of violation. The
// taxonomy is seeded at startup and not editable through the API.
type Alert struct {
	ID          int64     `json:"id"`
	Code        AlertCode `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	UpdatedAt   time.Time `json:"updated_at"`
}
