// Package sessions implements the session lifecycle: registration, login,
// refresh-token rotation, and logout. It is the only layer with
// business-level invariants; everything it returns across the package
// boundary is a *common.AppError.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/shared/db"
	"github.com/dmitrijs2005/authgate/internal/server/users"
)

// AuthResult bundles the authenticated user with a freshly minted token
// pair. RefreshToken is raw and must only travel to the client once.
type AuthResult struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
}

type Service struct {
	conn         *sql.DB
	repos        db.RepositoryManager
	passwords    *auth.PasswordHasher
	tokens       *auth.TokenManager
	queryTimeout time.Duration
}

func NewService(conn *sql.DB, repos db.RepositoryManager, passwords *auth.PasswordHasher, tokens *auth.TokenManager, queryTimeout time.Duration) *Service {
	return &Service{
		conn:         conn,
		repos:        repos,
		passwords:    passwords,
		tokens:       tokens,
		queryTimeout: queryTimeout,
	}
}

// Register creates a user and returns a first token pair. A taken email
// surfaces as a Conflict.
func (s *Service) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, common.NewUnexpected(err)
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repos.Users(tx).Create(ctx, email, hash)
		if err != nil {
			return err
		}

		result, err = s.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return result, nil
}

// Login verifies credentials and returns a token pair. Every successful
// login first revokes all outstanding refresh tokens for the user, so only
// the newest session stays valid. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.repos.Users(s.conn).GetByEmail(ctx, email)
	if err != nil {
		if common.IsKind(err, common.KindNotFound) {
			return nil, common.NewAuthentication("Invalid email or password")
		}
		return nil, asAppError(err)
	}

	if !s.passwords.Verify(password, user.PasswordHash) {
		return nil, common.NewAuthentication("Invalid email or password")
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).DeleteAllForUser(ctx, user.ID); err != nil {
			return err
		}

		result, err = s.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return result, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// pair is issued. Rotation is one-shot — the conditional delete inside the
// transaction guarantees that of two concurrent calls with the same raw
// token at most one succeeds; the other gets an Authentication error.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	claims, err := s.tokens.VerifyRefresh(rawToken)
	if err != nil {
		return nil, common.NewAuthentication("Invalid refresh token")
	}

	digest := auth.HashToken(rawToken)

	var result *AuthResult
	err = dbx.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		removed, err := s.repos.RefreshTokens(tx).Delete(ctx, digest)
		if err != nil {
			return err
		}
		if !removed {
			// never issued, already rotated, revoked, or expired
			return common.NewAuthentication("Invalid refresh token")
		}

		user, err := s.repos.Users(tx).GetByID(ctx, claims.UserID)
		if err != nil {
			if common.IsKind(err, common.KindNotFound) {
				return common.NewAuthentication("Invalid refresh token")
			}
			return err
		}

		result, err = s.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return result, nil
}

// CurrentUser loads the user behind a verified access token's subject.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*users.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.repos.Users(s.conn).GetByID(ctx, userID)
	if err != nil {
		return nil, asAppError(err)
	}

	return user, nil
}

// Logout consumes the presented refresh token's record if one exists.
// Deleting a token that was never stored is not an error; logout is
// idempotent.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.repos.RefreshTokens(s.conn).Delete(ctx, auth.HashToken(rawToken)); err != nil {
		return asAppError(err)
	}

	return nil
}

// SweepExpired removes refresh records whose expiry has passed. Lookups
// already filter on expiry; this only reclaims rows.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.repos.RefreshTokens(s.conn).DeleteExpired(ctx)
	if err != nil {
		return 0, asAppError(err)
	}

	return n, nil
}

func (s *Service) issueTokens(ctx context.Context, q dbx.DBTX, user *users.User) (*AuthResult, error) {
	access, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, common.NewUnexpected(err)
	}

	refresh, err := s.tokens.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, common.NewUnexpected(err)
	}

	_, err = s.repos.RefreshTokens(q).Create(ctx, user.ID, auth.HashToken(refresh), s.tokens.RefreshExpiry())
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// asAppError keeps taxonomy members intact and folds transaction machinery
// failures (begin/commit, timeouts) into KindStorage.
func asAppError(err error) error {
	var ae *common.AppError
	if errors.As(err, &ae) {
		return ae
	}
	return common.NewStorage("database operation failed", err)
}
