package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/models"
	"github.com/noah-isme/tutorbot-admin/internal/service"
	"github.com/noah-isme/tutorbot-admin/pkg/response"
)

type sessionService interface {
	List(ctx context.Context, req service.PageRequest) dto.Page[dto.SessionListItem]
}

// SessionHandler exposes the session listing.
type SessionHandler struct {
	sessions sessionService
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessions sessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// List godoc
// @Summary List learning sessions
// @Tags Sessions
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /api/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	page := h.sessions.List(c.Request.Context(), pageRequest(c))
	response.JSON(c, http.StatusOK, page.Data, models.NewPagination(page.Page, page.PageSize, page.Total), responseMeta(c))
}
