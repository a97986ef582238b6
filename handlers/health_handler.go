package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nakayamaryo0731/oaiko/services"
	"github.com/nakayamaryo0731/oaiko/types"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	healthService *services.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// LivenessCheck reports that the process is running.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck reports whether the service can reach its dependencies.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	if health.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}
