package model

import (
	"math"
	"time"
)

type Room struct {
	ID                    int64     `json:"id"`
	ContestID             int64     `json:"contest_id"`
	AccessCode            string    `json:"access_code"` // display identifier, not unique
	RegistrationStartTime time.Time `json:"registration_start_time"`
	RegistrationEndTime   time.Time `json:"registration_end_time"`
	ExamStartTime         time.Time `json:"exam_start_time"`
	ExamEndTime           time.Time `json:"exam_end_time"`
	Capacity              int       `json:"capacity"`
	AutoApprove           bool      `json:"auto_approve"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	ContestName      *string `json:"contest_name,omitempty"` // For display
	AttemptCount     int     `json:"attempt_count"`
	OccupancyPercent int     `json:"occupancy_percent"`
	CapacityExceeded bool    `json:"capacity_exceeded"`
}

// OccupancyPercent reports room fill as a rounded percentage. Counts above
// capacity yield values over 100.
func OccupancyPercent(attemptCount, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(attemptCount) / float64(capacity) * 100))
}

// FillOccupancy sets the derived occupancy fields from an attempt count.
func (r *Room) FillOccupancy(attemptCount int) {
	r.AttemptCount = attemptCount
	r.OccupancyPercent = OccupancyPercent(attemptCount, r.Capacity)
	r.CapacityExceeded = attemptCount >= r.Capacity
}
