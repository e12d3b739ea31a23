package models

import "time"

// RatingOutstanding is assigned automatically when the requester never
// rates the work and the grace window after completion has lapsed.
const RatingOutstanding = "Outstanding"

// AutoRatingGrace is the window after date_completed before an omitted
// rating defaults to Outstanding.
const AutoRatingGrace = 72 * time.Hour

// Feedback is the post-completion rating tied to an accomplishment report.
// One row per (accomplishment_id, request_id) pair by upsert convention.
type Feedback struct {
	ID               string     `db:"id" json:"id"`
	AccomplishmentID string     `db:"accomplishment_id" json:"accomplishment_id"`
	RequestID        string     `db:"request_id" json:"request_id"`
	Rating           string     `db:"rating" json:"rating"`
	FinalRemarks     string     `db:"final_remarks" json:"final_remarks"`
	Feedback         string     `db:"feedback" json:"feedback"`
	DateStarted      *time.Time `db:"date_started" json:"date_started,omitempty"`
	DateCompleted    *time.Time `db:"date_completed" json:"date_completed,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
