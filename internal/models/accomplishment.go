package models

import "time"

// AccomplishmentReport closes out a work request. One row per request by
// upsert convention; the data layer enforces no unique constraint, so
// racing writers can still produce duplicates.
type AccomplishmentReport struct {
	ID            string        `db:"id" json:"id"`
	RequestID     string        `db:"request_id" json:"request_id"`
	Description   string        `db:"description" json:"description"`
	DateStarted   *time.Time    `db:"date_started" json:"date_started,omitempty"`
	DateCompleted *time.Time    `db:"date_completed" json:"date_completed,omitempty"`
	Status        RequestStatus `db:"status" json:"status"`
	Remarks       string        `db:"remarks" json:"remarks"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
