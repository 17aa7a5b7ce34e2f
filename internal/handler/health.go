package handler

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/internal/service"
)

type HealthHandler struct {
	healthService *service.HealthService
}

func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// HandleHealth 健康检查
// @Summary 健康检查
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=service.HealthStatus}
// @Failure 500 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	result, err := h.healthService.Check(c.Request.Context())
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}
