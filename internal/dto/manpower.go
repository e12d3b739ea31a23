package dto

// ManpowerRequest captures manpower create/update payloads.
type ManpowerRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Position     string `json:"position" validate:"required"`
	DivisionName string `json:"division_name" validate:"required"`
}
