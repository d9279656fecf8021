package models

import "time"

// Upload records an artifact (image or audio) received from a user.
// Rows are immutable after creation; reports reference them by ID.
type Upload struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"-"` // Where the bytes actually live
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}
