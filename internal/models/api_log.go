package models

import "time"

// APILog is one request/response trace row, written off the request path
// by the API-log queue. Writes are best effort; a lost row is acceptable.
type APILog struct {
	ID              string    `db:"id" json:"id"`
	UserID          *string   `db:"user_id" json:"user_id,omitempty"`
	Method          string    `db:"method" json:"method"`
	Path            string    `db:"path" json:"path"`
	Status          int       `db:"status" json:"status"`
	RequestBody     string    `db:"request_body" json:"request_body"`
	ResponseSnippet string    `db:"response_snippet" json:"response_snippet"`
	LatencyMs       int64     `db:"latency_ms" json:"latency_ms"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
