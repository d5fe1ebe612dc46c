package model

import "time"

const (
	RoleAdmin    = "admin"
	RoleExaminer = "examiner"
)

// User is an operator account, not a candidate.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
