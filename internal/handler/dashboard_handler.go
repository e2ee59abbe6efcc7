package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/pkg/response"
)

type dashboardService interface {
	Statistics(ctx context.Context) dto.Statistics
}

type progressService interface {
	Report(ctx context.Context) dto.ProgressReport
}

// DashboardHandler wires the statistics and progress builders to JSON endpoints.
type DashboardHandler struct {
	dashboard dashboardService
	progress  progressService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboard dashboardService, progress progressService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, progress: progress}
}

// Statistics godoc
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/statistics [get]
func (h *DashboardHandler) Statistics(c *gin.Context) {
	stats := h.dashboard.Statistics(c.Request.Context())
	response.JSON(c, http.StatusOK, stats, nil, responseMeta(c))
}

// Progress godoc
// @Summary Student progress report
// @Tags Progress
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/progress [get]
func (h *DashboardHandler) Progress(c *gin.Context) {
	report := h.progress.Report(c.Request.Context())
	response.JSON(c, http.StatusOK, report, nil, responseMeta(c))
}
