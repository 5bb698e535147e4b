package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hirehub/internal/database"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status reports whether the service can reach its database. Probe failures
// are logged and surfaced only as "unavailable".
func (h *HealthController) Status(c *gin.Context) {
	dbState, healthy := h.checkDatabase(c.Request.Context())

	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"database": dbState},
	}

	statusCode := http.StatusOK
	if !healthy {
		health.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) checkDatabase(ctx context.Context) (string, bool) {
	if h.db == nil {
		return "not configured", true
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		log.Printf("Health check: database ping failed: %v", err)
		return "unavailable", false
	}
	return "ok", true
}
