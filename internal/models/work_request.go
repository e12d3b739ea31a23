package models

import "time"

// RequestStatus enumerates the lifecycle states a work request moves through.
// Transitions are plain field writes; the stages do not enforce ordering.
type RequestStatus string

const (
	StatusPending       RequestStatus = "Pending"
	StatusOngoing       RequestStatus = "Ongoing"
	StatusForInspection RequestStatus = "For Inspection"
	StatusCompleted     RequestStatus = "Completed"
	StatusReturned      RequestStatus = "Returned"
)

// ValidStatus reports whether the given string is a known request status.
func ValidStatus(s string) bool {
	switch RequestStatus(s) {
	case StatusPending, StatusOngoing, StatusForInspection, StatusCompleted, StatusReturned:
		return true
	}
	return false
}

// WorkRequest is a submitted facilities service request.
type WorkRequest struct {
	ID           string        `db:"id" json:"id"`
	ControlNo    string        `db:"control_no" json:"control_no"`
	Description  string        `db:"description" json:"description"`
	OfficeName   string        `db:"office_name" json:"office_name"`
	LocationName string        `db:"location_name" json:"location_name"`
	CategoryName string        `db:"category_name" json:"category_name"`
	Area         string        `db:"area" json:"area"`
	Overtime     bool          `db:"overtime" json:"overtime"`
	FiscalYear   string        `db:"fiscal_year" json:"fiscal_year"`
	FilePath     *string       `db:"file_path" json:"file_path,omitempty"`
	Status       RequestStatus `db:"status" json:"status"`
	RequestedBy  string        `db:"requested_by" json:"requested_by"`
	IsArchived   bool          `db:"is_archived" json:"is_archived"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// WorkRequestFilter narrows listing queries. Archived rows are excluded
// unless IncludeArchived is set.
type WorkRequestFilter struct {
	Status          string
	LocationName    string
	CategoryName    string
	DivisionName    string
	FiscalYear      string
	Search          string
	IncludeArchived bool
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}
