package dto

// LookupRequest captures lookup create/update payloads shared by all
// reference-data tables.
type LookupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=150"`
}
