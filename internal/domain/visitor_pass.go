package domain

import "time"

// VisitorPass authorizes a visit. Immutable once issued.
type VisitorPass struct {
	ID         string
	VisitorID  string
	IssuedBy   string
	ValidUntil time.Time
	IssuedAt   time.Time
}

// Expired reports whether the pass validity window has ended.
func (p *VisitorPass) Expired(now time.Time) bool {
	return now.After(p.ValidUntil)
}
