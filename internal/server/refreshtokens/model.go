package refreshtokens

import "time"

// RefreshToken is one outstanding, not-yet-consumed refresh token. TokenHash
// is the SHA-256 hex digest of the signed token; records are deleted on
// rotation, logout, or bulk invalidation at login.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
