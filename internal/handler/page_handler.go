package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorbot-admin/internal/models"
	"github.com/noah-isme/tutorbot-admin/pkg/config"
)

// pageView is the pagination block rendered under each table.
type pageView struct {
	models.Pagination
	Prev    int
	Next    int
	HasPrev bool
	HasNext bool
}

func newPageView(page, pageSize, total int) pageView {
	p := models.NewPagination(page, pageSize, total)
	return pageView{
		Pagination: *p,
		Prev:       page - 1,
		Next:       page + 1,
		HasPrev:    page > 1,
		HasNext:    page < p.TotalPages,
	}
}

// PageHandler renders the HTML admin pages.
type PageHandler struct {
	app       config.AppConfig
	dashboard dashboardService
	progress  progressService
	students  studentService
	topics    topicService
	sessions  sessionService
}

// PageHandlerParams groups constructor dependencies.
type PageHandlerParams struct {
	App       config.AppConfig
	Dashboard dashboardService
	Progress  progressService
	Students  studentService
	Topics    topicService
	Sessions  sessionService
}

// NewPageHandler constructs a PageHandler.
func NewPageHandler(params PageHandlerParams) *PageHandler {
	return &PageHandler{
		app:       params.App,
		dashboard: params.Dashboard,
		progress:  params.Progress,
		students:  params.Students,
		topics:    params.Topics,
		sessions:  params.Sessions,
	}
}

func (h *PageHandler) render(c *gin.Context, name, title string, data gin.H) {
	data["title"] = title
	data["app"] = h.app
	data["username"] = currentUser(c)
	data["active"] = name
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, name, data)
}

// Dashboard renders the statistics overview.
func (h *PageHandler) Dashboard(c *gin.Context) {
	stats := h.dashboard.Statistics(c.Request.Context())
	h.render(c, "dashboard", "Dashboard", gin.H{"stats": stats})
}

// Students renders a page of students.
func (h *PageHandler) Students(c *gin.Context) {
	page := h.students.List(c.Request.Context(), pageRequest(c))
	h.render(c, "students", "Students", gin.H{
		"students":   page.Data,
		"pagination": newPageView(page.Page, page.PageSize, page.Total),
	})
}

// Topics renders a page of topics.
func (h *PageHandler) Topics(c *gin.Context) {
	page := h.topics.List(c.Request.Context(), pageRequest(c))
	h.render(c, "topics", "Learning topics", gin.H{
		"topics":     page.Data,
		"pagination": newPageView(page.Page, page.PageSize, page.Total),
	})
}

// Sessions renders a page of learning sessions.
func (h *PageHandler) Sessions(c *gin.Context) {
	page := h.sessions.List(c.Request.Context(), pageRequest(c))
	h.render(c, "sessions", "Learning sessions", gin.H{
		"sessions":   page.Data,
		"pagination": newPageView(page.Page, page.PageSize, page.Total),
	})
}

// Progress renders the progress report.
func (h *PageHandler) Progress(c *gin.Context) {
	report := h.progress.Report(c.Request.Context())
	h.render(c, "progress", "Student progress", gin.H{"progress": report})
}
