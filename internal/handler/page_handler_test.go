package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/service"
	"github.com/noah-isme/tutorbot-admin/pkg/config"
	"github.com/noah-isme/tutorbot-admin/web"
)

type fakeTopicSrv struct{ page dto.Page[dto.TopicListItem] }

func (f fakeTopicSrv) List(context.Context, service.PageRequest) dto.Page[dto.TopicListItem] {
	return f.page
}

type fakeSessionSrv struct{ page dto.Page[dto.SessionListItem] }

func (f fakeSessionSrv) List(context.Context, service.PageRequest) dto.Page[dto.SessionListItem] {
	return f.page
}

func newPageRouter(t *testing.T, h *PageHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	router := gin.New()
	router.HTMLRender = renderer
	router.GET("/", h.Dashboard)
	router.GET("/students", h.Students)
	router.GET("/topics", h.Topics)
	router.GET("/sessions", h.Sessions)
	router.GET("/progress", h.Progress)
	return router
}

func TestPageHandlerRendersPages(t *testing.T) {
	dashboard := &fakeDashboardSrv{
		stats: dto.Statistics{TotalStudents: 45, RecentSessions: []dto.RecentSession{{ID: "s-1", TopicName: "Fractions", CreatedAt: "2024-01-15T14:30:00.123456+00:00"}}},
		report: dto.ProgressReport{
			AverageProgress: 66.7,
			TotalStudents:   150,
			Students:        []dto.StudentProgress{{ID: 1, FirstName: "Ivan", LastName: "Petrov", CompletedTopics: 2, TotalTopics: 4}},
		},
	}
	students := &fakeStudentSrv{page: dto.Page[dto.StudentListItem]{
		Data:  []dto.StudentListItem{{ID: 7, FirstName: "Anna", CreatedAt: "2024-01-15T14:30:00+00:00"}},
		Total: 45, Page: 2, PageSize: 20,
	}}
	h := NewPageHandler(PageHandlerParams{
		App:       config.AppConfig{Title: "Tutor Admin", Version: "1.0.0"},
		Dashboard: dashboard,
		Progress:  dashboard,
		Students:  students,
		Topics:    fakeTopicSrv{page: dto.Page[dto.TopicListItem]{Data: []dto.TopicListItem{{ID: 1, Title: "Fractions"}}, Page: 1, PageSize: 20, Total: 1}},
		Sessions:  fakeSessionSrv{page: dto.Page[dto.SessionListItem]{Data: []dto.SessionListItem{{ID: "s-9", CurrentQuestion: "2+2?"}}, Page: 1, PageSize: 20, Total: 1}},
	})
	router := newPageRouter(t, h)

	cases := map[string][]string{
		"/":                {"45", "Fractions", "2024-01-15 14:30"},
		"/students?page=2": {"Anna", "2 / 3", "2024-01-15 14:30"},
		"/topics":          {"Fractions"},
		"/sessions":        {"s-9", "2+2?"},
		"/progress":        {"66.7", "Ivan Petrov", "Showing 1 of 150 students."},
	}
	for target, fragments := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code, target)
		for _, fragment := range fragments {
			assert.Contains(t, rec.Body.String(), fragment, target)
		}
		assert.Contains(t, rec.Body.String(), "Tutor Admin", target)
	}
}

func TestNewPageView(t *testing.T) {
	view := newPageView(3, 20, 45)
	assert.Equal(t, 3, view.TotalPages)
	assert.True(t, view.HasPrev)
	assert.False(t, view.HasNext)
	assert.Equal(t, 2, view.Prev)
}
