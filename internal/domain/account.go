package domain

import "time"

// Role enumerates account privilege levels.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
	RoleHost     Role = "host"
	RoleSecurity Role = "security"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleResident, RoleHost, RoleSecurity:
		return true
	}
	return false
}

// Elevated reports whether the role may act on records it does not own.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleSecurity
}

// Account is the domain model for registered users, hosts, security
// personnel, and admins.
type Account struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash string
	Role         Role
	Name         string
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
