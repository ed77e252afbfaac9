package dto

import "time"

// RegisterRequest payload for account registration.
type RegisterRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role,omitempty"`
	Building  string  `json:"building,omitempty"`
	Apartment string  `json:"apartment,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateHostContactRequest payload for host phone updates.
type UpdateHostContactRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountSummary is the public shape of an account.
type AccountSummary struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}
