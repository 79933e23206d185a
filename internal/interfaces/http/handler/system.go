package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler exposes liveness and version endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	version string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, version string) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		version: version,
		started: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:  "ok",
		App:     h.appName,
		Version: h.version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	})
}
