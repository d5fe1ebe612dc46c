package model

import (
	"encoding/json"
	"time"
)

type ProcessStatus string

const (
	ProcessRunning ProcessStatus = "running"
	ProcessStopped ProcessStatus = "stopped"
)

// Process is one observed process on a candidate machine. ParentID links
// processes into a per-attempt tree; status is derived from EndTime.
type Process struct {
	ID        int64           `json:"id"`
	PID       int             `json:"pid"`
	Name      string          `json:"name"`
	ParentID  *int64          `json:"parent_id,omitempty"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	AttemptID int64           `json:"attempt_id"`
	Status    ProcessStatus   `json:"status"` // derived

	Blacklisted bool `json:"blacklisted"`
}

func (p *Process) DeriveStatus() ProcessStatus {
	if p.EndTime == nil {
		return ProcessRunning
	}
	return ProcessStopped
}

type ProcessStats struct {
	Running int `json:"running"`
	Stopped int `json:"stopped"`
}
