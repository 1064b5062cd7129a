package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
)

// Context keys set by RequireAuth.
const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
)

// UserID returns the authenticated user's id placed by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// UserEmail returns the authenticated user's email placed by RequireAuth.
func UserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}

// RequireAuth verifies the Bearer access token and stores the caller's
// identity on the context. The header must be exactly "Bearer <token>";
// any other shape is rejected without consulting the verifier.
func RequireAuth(tokens *auth.TokenManager, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			writeError(c, log, common.NewAuthentication("Missing or malformed authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccess(parts[1])
		if err != nil {
			writeError(c, log, common.NewAuthentication("Invalid or expired access token"))
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Next()
	}
}

// RequestLogger emits one structured line per request after it completes.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
