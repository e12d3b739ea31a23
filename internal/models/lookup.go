package models

import "time"

// LookupKind identifies one of the reference-data tables backing
// work-request field validation.
type LookupKind string

const (
	LookupCategory LookupKind = "categories"
	LookupOffice   LookupKind = "offices"
	LookupLocation LookupKind = "locations"
	LookupDivision LookupKind = "divisions"
	LookupUserType LookupKind = "user_types"
)

// ValidLookupKind reports whether the kind maps to a known table.
func ValidLookupKind(k LookupKind) bool {
	switch k {
	case LookupCategory, LookupOffice, LookupLocation, LookupDivision, LookupUserType:
		return true
	}
	return false
}

// LookupItem is one reference-data row. All lookup tables share this shape.
type LookupItem struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	IsArchived bool      `db:"is_archived" json:"is_archived"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// LookupFilter narrows lookup listings.
type LookupFilter struct {
	Search          string
	IncludeArchived bool
	Page            int
	PageSize        int
}
