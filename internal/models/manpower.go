package models

import "time"

// Manpower is a maintenance crew member assignable to actual work.
type Manpower struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Position     string    `db:"position" json:"position"`
	DivisionName string    `db:"division_name" json:"division_name"`
	IsArchived   bool      `db:"is_archived" json:"is_archived"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ManpowerFilter narrows manpower listings.
type ManpowerFilter struct {
	DivisionName    string
	Search          string
	IncludeArchived bool
	Page            int
	PageSize        int
}
