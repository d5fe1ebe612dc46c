package model

import "time"

type MessageType string

const (
	MessageInfo    MessageType = "info"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageInfo, MessageWarning, MessageError:
		return true
	}
	return false
}

// Message is an operator announcement. A nil RoomID broadcasts to every room
// of the referenced contest.
type Message struct {
	ID          int64       `json:"id"`
	Type        MessageType `json:"type"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	RoomID      *int64      `json:"room_id,omitempty"`
	ContextID   *int64      `json:"context_id,omitempty"` // contest reference
	CreatedByID int64       `json:"created_by_id"`
	CreatedAt   time.Time   `json:"created_at"`

	RoomAccessCode *string `json:"room_access_code,omitempty"` // For display
}
