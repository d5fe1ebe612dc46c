package model

import (
	"encoding/json"
	"time"
)

type ImageStatus string

const (
	ImageActive  ImageStatus = "active"
	ImageDeleted ImageStatus = "deleted"
)

// Image is a captured screenshot reference. The URL is a deterministic
// placeholder templated from the id; no asset storage backs it.
type Image struct {
	ID        int64           `json:"id"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	Status    ImageStatus     `json:"status"`
	URL       string          `json:"url"` // derived
}
