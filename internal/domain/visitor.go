package domain

import "time"

// Visitor is a registered visit entry. Building, apartment, and
// whom-to-visit are filled from the registering resident when one is
// known; entry and checkout times are stamped by check-in/check-out.
type Visitor struct {
	ID           string
	AccessPass   string
	Name         string
	Contact      string
	Gender       string
	Building     *string
	Apartment    *string
	WhomToVisit  *string
	EntryTime    *time.Time
	CheckoutTime *time.Time
	Age          *int
	Address      *string
	Zipcode      *string
	Relation     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VisitedBy reports whether the visitor was registered against the
// given host/resident name.
func (v *Visitor) VisitedBy(name string) bool {
	return v.WhomToVisit != nil && *v.WhomToVisit == name
}
