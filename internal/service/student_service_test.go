package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/models"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
)

func newTestStudentService(store *fakeStore, metrics degradeRecorder) *StudentService {
	return NewStudentService(StudentServiceParams{
		Store:       store,
		Logger:      zap.NewNop(),
		Metrics:     metrics,
		Pages:       PageConfig{DefaultSize: 20, MaxSize: 100},
		Concurrency: 4,
	})
}

func seedStudents(store *fakeStore, n int) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		store.add(models.CollectionStudents, models.Row{
			"id":        int64(i),
			"fullname":  "Student Number",
			"tgid":      int64(1000 + i),
			"isactive":  true,
			"createdat": base.Add(time.Duration(i) * time.Hour),
			"Group":     "G1",
		})
	}
}

func TestStudentServiceListPagination(t *testing.T) {
	store := newFakeStore()
	seedStudents(store, 45)
	svc := newTestStudentService(store, nil)

	page := svc.List(context.Background(), PageRequest{Page: 2, PageSize: 20})

	require.Len(t, page.Data, 20)
	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	// newest first: the 21st newest student has id 45-20.
	assert.Equal(t, int64(25), page.Data[0].ID)
	assert.Equal(t, int64(6), page.Data[19].ID)

	require.NotEmpty(t, store.queries)
	assert.Equal(t, 20, store.queries[0].Offset)
	assert.Equal(t, 20, store.queries[0].Limit)
}

func TestStudentServiceListEmptyCollection(t *testing.T) {
	svc := newTestStudentService(newFakeStore(), nil)

	page := svc.List(context.Background(), PageRequest{})

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 0, page.TotalPages)
}

func TestStudentServiceListRowFields(t *testing.T) {
	store := newFakeStore()
	store.add(models.CollectionStudents, models.Row{
		"id": int64(7), "fullname": "  Ivan  Petrov ", "tgid": int64(42), "isactive": nil, "createdat": "2024-01-15T10:30:00+00:00", "Group": "B2",
	})
	store.add(models.CollectionTasks, models.Row{"id": int64(1), "studentid": int64(7)}, models.Row{"id": int64(2), "studentid": int64(7)})
	store.add(models.CollectionTests, models.Row{"id": int64(3), "studentid": int64(7)}, models.Row{"id": int64(4), "studentid": int64(8)})
	svc := newTestStudentService(store, nil)

	page := svc.List(context.Background(), PageRequest{Page: 1})
	require.Len(t, page.Data, 1)

	item := page.Data[0]
	assert.Equal(t, "Ivan", item.FirstName)
	assert.Equal(t, "Petrov", item.LastName)
	assert.Equal(t, "", item.Username)
	assert.Equal(t, "B2", item.Level)
	assert.Equal(t, "B2", item.Group)
	assert.Equal(t, 3, item.TopicsCount)
	assert.True(t, item.IsActive)
	assert.Equal(t, "2024-01-15T10:30:00+00:00", item.CreatedAt)
}

func TestStudentServiceSubCountsDegradeIndependently(t *testing.T) {
	store := newFakeStore()
	seedStudents(store, 1)
	store.add(models.CollectionTasks, models.Row{"id": int64(1), "studentid": int64(1)})
	store.add(models.CollectionTests, models.Row{"id": int64(2), "studentid": int64(1)}, models.Row{"id": int64(3), "studentid": int64(1)})
	store.fail = failOn("count", models.CollectionTasks, "studentid", errors.New("timeout"))
	metrics := newRecordingMetrics()
	svc := newTestStudentService(store, metrics)

	page := svc.List(context.Background(), PageRequest{})

	require.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Data[0].TopicsCount)
	assert.Equal(t, 1, metrics.count("students.tasks_count/error"))
}

func TestStudentServiceTotalFallsBackToPageLength(t *testing.T) {
	store := newFakeStore()
	seedStudents(store, 3)
	store.fail = failOn("count", models.CollectionStudents, "", errors.New("count unavailable"))
	svc := newTestStudentService(store, nil)

	page := svc.List(context.Background(), PageRequest{})

	assert.Len(t, page.Data, 3)
	assert.Equal(t, 3, page.Total)
}

func TestStudentServicePageFailureYieldsEmptyPage(t *testing.T) {
	store := newFakeStore()
	seedStudents(store, 3)
	store.fail = failOn("page", models.CollectionStudents, "", errors.New("boom"))
	svc := newTestStudentService(store, nil)

	page := svc.List(context.Background(), PageRequest{Page: 1})

	assert.Empty(t, page.Data)
	assert.Equal(t, 3, page.Total)
}

func TestStudentServicePageSizeClamped(t *testing.T) {
	store := newFakeStore()
	seedStudents(store, 2)
	svc := newTestStudentService(store, nil)

	page := svc.List(context.Background(), PageRequest{Page: -3, PageSize: 1000})

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PageSize)
}

func TestStudentServiceGet(t *testing.T) {
	store := newFakeStore()
	store.add(models.CollectionStudents, models.Row{"id": int64(5), "fullname": "Anna", "tgid": int64(9), "isactive": false, "Group": "A"})
	svc := newTestStudentService(store, nil)

	student, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Anna", student.FirstName)
	assert.Equal(t, "", student.LastName)
	assert.False(t, student.IsActive)

	_, err = svc.Get(context.Background(), 6)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Get(context.Background(), 0)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	store.fail = failOn("one", models.CollectionStudents, "", errors.New("down"))
	_, err = svc.Get(context.Background(), 5)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
