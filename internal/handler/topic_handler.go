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

type topicService interface {
	List(ctx context.Context, req service.PageRequest) dto.Page[dto.TopicListItem]
}

// TopicHandler exposes the topic listing.
type TopicHandler struct {
	topics topicService
}

// NewTopicHandler constructs a TopicHandler.
func NewTopicHandler(topics topicService) *TopicHandler {
	return &TopicHandler{topics: topics}
}

// List godoc
// @Summary List topics
// @Tags Topics
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /api/topics [get]
func (h *TopicHandler) List(c *gin.Context) {
	page := h.topics.List(c.Request.Context(), pageRequest(c))
	response.JSON(c, http.StatusOK, page.Data, models.NewPagination(page.Page, page.PageSize, page.Total), responseMeta(c))
}
