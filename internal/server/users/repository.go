package users

import (
	"context"
)

// Repository persists users. Implementations return *common.AppError values:
// KindConflict for a duplicate email, KindNotFound for an absent user, and
// KindStorage for connectivity or constraint failures.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
