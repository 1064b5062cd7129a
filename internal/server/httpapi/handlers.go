package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/sessions"
	"github.com/dmitrijs2005/authgate/internal/server/users"
)

// refreshCookieName is the cookie carrying the raw refresh token. The token
// never appears in a response body; the browser is the only holder.
const refreshCookieName = "refreshToken"

// SessionService is the slice of the session orchestrator the HTTP layer
// depends on.
type SessionService interface {
	Register(ctx context.Context, email, password string) (*sessions.AuthResult, error)
	Login(ctx context.Context, email, password string) (*sessions.AuthResult, error)
	Refresh(ctx context.Context, rawToken string) (*sessions.AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (*users.User, error)
	Logout(ctx context.Context, rawToken string) error
}

// Handler carries the dependencies of the /auth endpoints.
type Handler struct {
	sessions   SessionService
	log        logging.Logger
	refreshTTL time.Duration
	production bool
}

func NewHandler(s SessionService, log logging.Logger, refreshTTL time.Duration, production bool) *Handler {
	return &Handler{sessions: s, log: log, refreshTTL: refreshTTL, production: production}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User        users.PublicUser `json:"user"`
	AccessToken string           `json:"accessToken"`
}

// Register creates a new account and opens its first session.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.log, common.NewValidation("Invalid request body", err.Error()))
		return
	}

	result, err := h.sessions.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	writeSuccess(c, http.StatusCreated, authResponse{
		User:        result.User.Public(),
		AccessToken: result.AccessToken,
	})
}

// Login verifies credentials and replaces any previously active session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.log, common.NewValidation("Invalid request body", err.Error()))
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	writeSuccess(c, http.StatusOK, authResponse{
		User:        result.User.Public(),
		AccessToken: result.AccessToken,
	})
}

// Refresh rotates the refresh token presented in the cookie and mints a new
// access token. The raw token is read from the cookie only; request bodies
// are ignored.
func (h *Handler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(refreshCookieName)
	if err != nil || raw == "" {
		writeError(c, h.log, common.NewValidation("Refresh token cookie is missing", nil))
		return
	}

	result, err := h.sessions.Refresh(c.Request.Context(), raw)
	if err != nil {
		// the presented token is spent or bogus either way
		h.clearRefreshCookie(c)
		writeError(c, h.log, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	writeSuccess(c, http.StatusOK, gin.H{"accessToken": result.AccessToken})
}

// Logout revokes the session named by the refresh cookie. Absent or unknown
// cookies still succeed; the end state is the same.
func (h *Handler) Logout(c *gin.Context) {
	raw, err := c.Cookie(refreshCookieName)
	if err == nil && raw != "" {
		if err := h.sessions.Logout(c.Request.Context(), raw); err != nil {
			writeError(c, h.log, err)
			return
		}
	}

	h.clearRefreshCookie(c)
	writeSuccess(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.sessions.CurrentUser(c.Request.Context(), UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	writeSuccess(c, http.StatusOK, gin.H{"user": user.Public()})
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(h.refreshTTL.Seconds()), "/", "", h.production, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.production, true)
}
