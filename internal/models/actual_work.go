package models

import "time"

// ActualWorkReport documents work carried out for a request. The request
// link is optional; rows may exist without a matching work request.
type ActualWorkReport struct {
	ID                string    `db:"id" json:"id"`
	RecommendedAction string    `db:"recommended_action" json:"recommended_action"`
	Remarks           string    `db:"remarks" json:"remarks"`
	ControlNo         string    `db:"control_no" json:"control_no"`
	ControlRequestID  *string   `db:"control_request_id" json:"control_request_id,omitempty"`
	IsArchived        bool      `db:"is_archived" json:"is_archived"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
