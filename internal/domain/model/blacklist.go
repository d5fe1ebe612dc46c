package model

import "time"

// BlacklistEntry is a globally disallowed process name, optionally attached
// to individual contests through the contest_process_blacklist join.
type BlacklistEntry struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
