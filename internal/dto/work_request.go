package dto

// FileUpload carries an uploaded attachment from the HTTP layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// CreateWorkRequestRequest captures POST /requests payload.
type CreateWorkRequestRequest struct {
	Description  string `json:"description" validate:"required"`
	OfficeName   string `json:"office_name" validate:"required"`
	LocationName string `json:"location_name" validate:"required"`
	CategoryName string `json:"category_name" validate:"required"`
	Area         string `json:"area"`
	Overtime     bool   `json:"overtime"`
	FiscalYear   string `json:"fiscal_year" validate:"required,len=4,numeric"`
}

// UpdateWorkRequestRequest captures PUT /requests/:id payload. Every field
// is written; omitted fields clear to their zero value.
type UpdateWorkRequestRequest struct {
	Description  string `json:"description" validate:"required"`
	OfficeName   string `json:"office_name" validate:"required"`
	LocationName string `json:"location_name" validate:"required"`
	CategoryName string `json:"category_name" validate:"required"`
	Area         string `json:"area"`
	Overtime     bool   `json:"overtime"`
	FiscalYear   string `json:"fiscal_year" validate:"required,len=4,numeric"`
	Status       string `json:"status" validate:"required"`
}
