package dto

import "time"

// InspectionRequest captures inspection report create/update payloads.
type InspectionRequest struct {
	Description    string `json:"description" validate:"required"`
	Recommendation string `json:"recommendation" validate:"required"`
	InspectedBy    string `json:"inspected_by" validate:"required"`
}

// ActualWorkRequest captures actual-work report payloads. The request link
// is optional; when present it must resolve to an existing work request.
type ActualWorkRequest struct {
	RecommendedAction string  `json:"recommended_action" validate:"required"`
	Remarks           string  `json:"remarks"`
	ControlNo         string  `json:"control_no" validate:"required"`
	ControlRequestID  *string `json:"control_request_id,omitempty"`
}

// AccomplishmentRequest captures the accomplishment upsert payload.
// Status may be omitted; an empty value resolves to "Completed".
type AccomplishmentRequest struct {
	RequestID     string     `json:"request_id" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	DateStarted   *time.Time `json:"date_started,omitempty"`
	DateCompleted *time.Time `json:"date_completed,omitempty"`
	Status        string     `json:"status"`
	Remarks       string     `json:"remarks"`
}

// FeedbackRequest captures the feedback upsert payload. Rating may be
// omitted; it defaults once the post-completion grace window lapses.
type FeedbackRequest struct {
	AccomplishmentID string  `json:"accomplishment_id" validate:"required"`
	RequestID        string  `json:"request_id" validate:"required"`
	Rating           *string `json:"rating,omitempty"`
	FinalRemarks     string  `json:"final_remarks"`
	Feedback         string  `json:"feedback"`
}
