package events

import (
	"time"

	"github.com/spec-kit/visitor-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVisitorRegistered EventType = "visitor_registered"
	EventVisitorCheckedIn  EventType = "visitor_checked_in"
	EventVisitorCheckedOut EventType = "visitor_checked_out"
	EventPassIssued        EventType = "pass_issued"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	AccountID *string      `json:"account_id,omitempty"`
	Name      string       `json:"name,omitempty"`
	Role      *domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	VisitorID string      `json:"visitor_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// VisitorRegisteredPayload payload.
type VisitorRegisteredPayload struct {
	AccessPass  string  `json:"access_pass"`
	VisitorName string  `json:"visitor_name"`
	WhomToVisit *string `json:"whom_to_visit,omitempty"`
	Building    *string `json:"building,omitempty"`
	Apartment   *string `json:"apartment,omitempty"`
}

// VisitorCheckedInPayload payload.
type VisitorCheckedInPayload struct {
	AccessPass string    `json:"access_pass"`
	EntryTime  time.Time `json:"entry_time"`
}

// VisitorCheckedOutPayload payload.
type VisitorCheckedOutPayload struct {
	AccessPass   string    `json:"access_pass"`
	CheckoutTime time.Time `json:"checkout_time"`
}

// PassIssuedPayload payload.
type PassIssuedPayload struct {
	PassID     string    `json:"pass_id"`
	IssuedBy   string    `json:"issued_by"`
	ValidUntil time.Time `json:"valid_until"`
}
