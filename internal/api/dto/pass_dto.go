package dto

import "time"

// IssuePassRequest payload for pass issuance.
type IssuePassRequest struct {
	VisitorID  string    `json:"visitor_id"`
	ValidUntil time.Time `json:"valid_until"`
}

// PassResponse is the public shape of a visitor pass.
type PassResponse struct {
	ID         string    `json:"id"`
	VisitorID  string    `json:"visitor_id"`
	IssuedBy   string    `json:"issued_by"`
	ValidUntil time.Time `json:"valid_until"`
	IssuedAt   time.Time `json:"issued_at"`
}

// HostContactResponse carries the host contact resolved from a pass.
type HostContactResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
