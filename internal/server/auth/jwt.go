package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every token verification failure:
// malformed, bad signature, wrong kind, expired. Callers must not learn
// which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload embedded in both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenManager issues and verifies the two token kinds. Access and refresh
// tokens share a shape but are signed with independent secrets and expiry
// policies, so one kind never verifies as the other. Secrets and TTLs are
// set once at construction and never mutated.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess signs a short-lived access token for the subject.
func (m *TokenManager) IssueAccess(userID, email string) (string, error) {
	return sign(userID, email, m.accessSecret, m.accessTTL)
}

// IssueRefresh signs a refresh token; its exp claim matches RefreshExpiry.
func (m *TokenManager) IssueRefresh(userID, email string) (string, error) {
	return sign(userID, email, m.refreshSecret, m.refreshTTL)
}

// VerifyAccess validates an access token and returns its claims.
func (m *TokenManager) VerifyAccess(token string) (*Claims, error) {
	return verify(token, m.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (m *TokenManager) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, m.refreshSecret)
}

// RefreshExpiry returns the absolute expiry a refresh record persisted now
// should carry. It uses the same TTL as IssueRefresh so the stored expiry
// never drifts from the signed exp claim.
func (m *TokenManager) RefreshExpiry() time.Time {
	return time.Now().Add(m.refreshTTL)
}

// RefreshTTL returns the refresh token lifetime (also the cookie max-age).
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
