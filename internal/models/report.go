package models

import "time"

// Report holds the generated findings for one upload. Result is either the
// narrative text itself or the path of a rendered PDF document.
type Report struct {
	ID        string    `json:"id"`
	Result    string    `json:"result"`
	UserID    string    `json:"userId"`
	UploadID  string    `json:"uploadId"`
	CreatedAt time.Time `json:"createdAt"`
}
