package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorbot-admin/internal/service"
	"github.com/noah-isme/tutorbot-admin/pkg/response"
)

type exportService interface {
	Progress(ctx context.Context, req service.ExportRequest) (*service.ExportFile, error)
	Students(ctx context.Context, req service.ExportRequest) (*service.ExportFile, error)
}

// ExportHandler serves file downloads of the aggregation output.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Progress godoc
// @Summary Export the progress report
// @Tags Progress
// @Produce octet-stream
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /api/progress/export [get]
func (h *ExportHandler) Progress(c *gin.Context) {
	h.serve(c, h.exports.Progress)
}

// Students godoc
// @Summary Export one page of students
// @Tags Students
// @Produce octet-stream
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Param page query int false "Page number"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /api/students/export [get]
func (h *ExportHandler) Students(c *gin.Context) {
	h.serve(c, h.exports.Students)
}

func (h *ExportHandler) serve(c *gin.Context, render func(context.Context, service.ExportRequest) (*service.ExportFile, error)) {
	req := service.ExportRequest{
		Format: strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv"))),
		Page:   queryInt(c, "page"),
	}
	file, err := render(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}
