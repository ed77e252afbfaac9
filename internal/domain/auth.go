package domain

import "time"

// Token represents issued authentication token metadata. Tokens are
// stateless JWTs; nothing is persisted for them.
type Token struct {
	SubjectID string
	Username  string
	Name      string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
