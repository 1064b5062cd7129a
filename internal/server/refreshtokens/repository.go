package refreshtokens

import (
	"context"
	"time"
)

// Repository persists refresh-token records keyed by their SHA-256 digest.
// The raw token never reaches this layer.
//
// Find and Delete only consider live records (expires_at in the future); an
// expired-but-unswept row behaves as if absent. Delete reports whether a
// live row was actually removed, which is what makes concurrent duplicate
// rotation one-shot: exactly one caller observes true.
type Repository interface {
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (*RefreshToken, error)
	Find(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Delete(ctx context.Context, tokenHash string) (bool, error)
	DeleteAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
