package models

import "time"

// InspectionReport is a free-standing inspection record. It carries no
// foreign key; linkage to a work request is by convention only.
type InspectionReport struct {
	ID             string    `db:"id" json:"id"`
	Description    string    `db:"description" json:"description"`
	Recommendation string    `db:"recommendation" json:"recommendation"`
	InspectedBy    string    `db:"inspected_by" json:"inspected_by"`
	IsArchived     bool      `db:"is_archived" json:"is_archived"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
