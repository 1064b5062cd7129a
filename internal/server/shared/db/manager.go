// Package db owns the database handle and hands out repositories bound to
// either the pooled connection or a transaction.
package db

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/refreshtokens"
	"github.com/dmitrijs2005/authgate/internal/server/users"
)

// RepositoryManager builds repositories over an arbitrary dbx.DBTX, letting
// callers run several repository calls inside one transaction.
type RepositoryManager interface {
	Users(q dbx.DBTX) users.Repository
	RefreshTokens(q dbx.DBTX) refreshtokens.Repository
	Ping(ctx context.Context) error
}
