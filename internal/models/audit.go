package models

import "time"

// AuditEvent is an append-only record of a user-visible action,
// e.g. "auth.login" or "report.generate".
type AuditEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
