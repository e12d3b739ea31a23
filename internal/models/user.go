package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleHead      UserRole = "HEAD"
	RoleStaff     UserRole = "STAFF"
	RoleRequester UserRole = "REQUESTER"
)

// ValidRole reports whether the given string is a known role.
func ValidRole(r string) bool {
	switch UserRole(r) {
	case RoleAdmin, RoleHead, RoleStaff, RoleRequester:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Role         UserRole   `db:"role" json:"role"`
	OfficeName   string     `db:"office_name" json:"office_name"`
	DivisionName string     `db:"division_name" json:"division_name"`
	AvatarPath   *string    `db:"avatar_path" json:"avatar_path,omitempty"`
	IsArchived   bool       `db:"is_archived" json:"is_archived"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName joins the name parts for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role            *UserRole
	DivisionName    string
	Search          string
	IncludeArchived bool
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
