package model

import "time"

// CandidateLabel is a roster entry authorizing a student id (std) to enter a
// contest's rooms. One per (contest_id, std) pair is expected but the source
// data does not enforce it.
type CandidateLabel struct {
	ID        int64     `json:"id"`
	Std       int64     `json:"std"`
	FullName  string    `json:"full_name"`
	ContestID int64     `json:"contest_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
