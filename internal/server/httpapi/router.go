package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
)

// NewRouter assembles the gin engine: recovery and request logging first,
// CORS, then the /auth group and the health probe.
func NewRouter(h *Handler, health *HealthHandler, tokens *auth.TokenManager, log logging.Logger, corsOrigin string, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{
			OK:     false,
			Status: http.StatusInternalServerError,
			Error:  &errorBody{Code: common.KindUnexpected.Code(), Message: "An unexpected error occurred"},
		})
	}))
	r.Use(RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		writeError(c, log, common.NewNotFound("Route not found"))
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", RequireAuth(tokens, log), h.Me)
	}

	r.GET("/health", health.Health)

	return r
}
