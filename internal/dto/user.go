package dto

// CreateUserRequest captures POST /users payload.
type CreateUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Role         string `json:"role" validate:"required"`
	OfficeName   string `json:"office_name"`
	DivisionName string `json:"division_name"`
}

// UpdateUserRequest captures PUT /users/:id payload. Password changes go
// through the dedicated change-password endpoint.
type UpdateUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Role         string `json:"role" validate:"required"`
	OfficeName   string `json:"office_name"`
	DivisionName string `json:"division_name"`
}
