package model

import "time"

type ExamStatus string
type ApprovalStatus string

const (
	ExamPending   ExamStatus = "pending"
	ExamActive    ExamStatus = "active"
	ExamCompleted ExamStatus = "completed"

	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Attempt is one candidate's session in one exam room. Approval status and
// exam status are independent fields; nothing couples them.
type Attempt struct {
	ID             int64          `json:"id"`
	Std            int64          `json:"std"` // candidate identifier
	RoomID         int64          `json:"room_id"`
	Location       string         `json:"location"`
	Status         ExamStatus     `json:"status"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	RegisteredAt   time.Time      `json:"registered_at"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	EndedAt        *time.Time     `json:"ended_at,omitempty"`

	StudentName    *string `json:"student_name,omitempty"`     // For display
	RoomAccessCode *string `json:"room_access_code,omitempty"` // For display
	ContestName    *string `json:"contest_name,omitempty"`     // For display
	ViolationCount int     `json:"violation_count"`
	RequiresReview bool    `json:"requires_review"` // false when the room auto-approves
}

// ApprovalStats are the per-page counters recomputed from the full set.
type ApprovalStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
