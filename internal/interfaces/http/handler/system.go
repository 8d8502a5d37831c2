package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/podplatform/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// RootResponse is the API banner
type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the liveness report
type HealthResponse struct {
	Status   string    `json:"status"`
	Time     time.Time `json:"time"`
	Database string    `json:"database"`
}

// SystemHandler serves the unauthenticated root and health endpoints. They
// answer with bare JSON so load balancers need no envelope parsing.
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// Root confirms the API is up
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{Status: "ok", Message: "POD Platform API is running"})
}

// Health pings the database. An unreachable database is a 503.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "healthy", Time: time.Now().UTC(), Database: "ok"}
	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
