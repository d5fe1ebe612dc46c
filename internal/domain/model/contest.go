package model

import (
	"time"
)

type ContestStatus string

const (
	ContestUpcoming ContestStatus = "upcoming"
	ContestOngoing  ContestStatus = "ongoing"
	ContestEnded    ContestStatus = "ended"
)

type Contest struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Status      ContestStatus `json:"status"` // derived, never stored
	CreatedByID *int64        `json:"created_by_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	CreatedByUsername *string `json:"created_by_username,omitempty"` // For display
	RoomCount         int     `json:"room_count,omitempty"`
	CandidateCount    int     `json:"candidate_count,omitempty"`
}

// StatusAt derives the contest phase from the time window alone.
func (c *Contest) StatusAt(now time.Time) ContestStatus {
	if now.Before(c.StartTime) {
		return ContestUpcoming
	}
	if now.After(c.EndTime) {
		return ContestEnded
	}
	return ContestOngoing
}
