package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/models"
	"github.com/noah-isme/tutorbot-admin/internal/service"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
	"github.com/noah-isme/tutorbot-admin/pkg/response"
)

type studentService interface {
	List(ctx context.Context, req service.PageRequest) dto.Page[dto.StudentListItem]
	Get(ctx context.Context, id int64) (*dto.StudentDetail, error)
}

// StudentHandler exposes the student listing and lookup endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /api/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	page := h.students.List(c.Request.Context(), pageRequest(c))
	response.JSON(c, http.StatusOK, page.Data, models.NewPagination(page.Page, page.PageSize, page.Total), responseMeta(c))
}

// Get godoc
// @Summary Get student by id
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id must be an integer"))
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}
