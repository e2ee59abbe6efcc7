package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:      config.EnvDevelopment,
		App:      config.AppConfig{Title: "Tutor Admin", Version: "test"},
		Database: config.DatabaseConfig{QueryTimeout: time.Second},
		Admin:    config.AdminConfig{Username: "admin", Password: "secret"},
		Aggregation: config.AggregationConfig{
			PageSize:             20,
			MaxPageSize:          100,
			LookupConcurrency:    4,
			ProgressStudentLimit: 100,
			RecentSessions:       10,
		},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	router, err := newRouter(testConfig(), zap.NewNop(), sqlx.NewDb(db, "postgres"))
	require.NoError(t, err)
	return router, mock
}

func TestAdminRoutesRequireCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{"/", "/api/students", "/api/progress/export"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic realm=", target)
	}
}

func TestProbesArePublic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestStudentsEndpointWithEmptyTable(t *testing.T) {
	router, mock := newTestRouter(t)
	mock.ExpectQuery(`SELECT .* FROM "stdlist" ORDER BY "createdat" DESC LIMIT 20`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fullname", "tgid", "isactive", "createdat", "Group"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "stdlist"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data       []interface{}          `json:"data"`
		Pagination map[string]interface{} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
	assert.Equal(t, float64(0), body.Pagination["total_count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/students/export?format=docx", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaticAssetsAreServed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
