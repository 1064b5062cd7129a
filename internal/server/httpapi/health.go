package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/shared/db"
)

// HealthHandler reports liveness plus a best-effort database probe.
type HealthHandler struct {
	repos db.RepositoryManager
	log   logging.Logger
	start time.Time
}

func NewHealthHandler(repos db.RepositoryManager, log logging.Logger) *HealthHandler {
	return &HealthHandler{repos: repos, log: log, start: time.Now()}
}

// Health always answers 200: the process is up even when the database is
// not, and the body says which. Load balancers that should stop routing on
// a database outage can key off the "database" field.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "connected"
	if err := h.repos.Ping(c.Request.Context()); err != nil {
		database = "disconnected"
		h.log.Warn(c.Request.Context(), "health probe: database unreachable", "error", err.Error())
	}

	writeSuccess(c, http.StatusOK, gin.H{
		"status":    "ok",
		"database":  database,
		"uptime":    time.Since(h.start).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
