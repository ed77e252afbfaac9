package domain

import "time"

// Resident holds the unit assignment for an account of role resident.
// Looked up by name when visitors are registered on the resident's behalf.
type Resident struct {
	ID        string
	Name      string
	Building  string
	Apartment string
	Phone     string
	CreatedAt time.Time
}
