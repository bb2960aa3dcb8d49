package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wavify/internal/api/v1/dto"
	"wavify/internal/api/v1/services"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	service services.HealthService
}

func NewHealthHandler(service services.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check handles GET /health
//
// @Summary Health check
// @Description Pings the metadata store and resolves the external tools
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "All dependencies available"
// @Failure 503 {object} dto.HealthResponse "At least one dependency unavailable"
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := h.service.Check(c.Request.Context())
	status := http.StatusOK
	if resp.Status != dto.HealthOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
