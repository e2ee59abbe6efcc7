package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/models"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
)

// StudentService builds the student listing and detail views.
type StudentService struct {
	agg   aggregator
	pages PageConfig
}

// StudentServiceParams groups constructor dependencies.
type StudentServiceParams struct {
	Store       tableReader
	Logger      *zap.Logger
	Metrics     degradeRecorder
	Pages       PageConfig
	Concurrency int
}

// NewStudentService constructs a StudentService.
func NewStudentService(params StudentServiceParams) *StudentService {
	return &StudentService{
		agg:   newAggregator(params.Store, params.Logger, params.Metrics, params.Concurrency),
		pages: params.Pages,
	}
}

// List returns one page of students, newest first, each with its task and test count.
func (s *StudentService) List(ctx context.Context, req PageRequest) dto.Page[dto.StudentListItem] {
	req = s.pages.normalise(req)
	start, end := req.bounds()

	rows := s.agg.page(ctx, "students.page", models.Query{
		Collection: models.CollectionStudents,
		Columns:    models.StudentColumns,
		OrderBy:    []models.Order{{Column: "createdat", Desc: true}},
	}.Range(start, end)).Or(nil)
	total := s.agg.count(ctx, "students.total", models.CollectionStudents).Or(len(rows))

	items := make([]dto.StudentListItem, len(rows))
	fanOut(ctx, s.agg.concurrency, len(rows), func(ctx context.Context, i int) {
		student := models.StudentFromRow(rows[i])
		items[i] = studentListItem(student, s.topicsCount(ctx, student.ID))
	})

	return newPage(req, items, total)
}

// Get returns a single student or ErrNotFound.
func (s *StudentService) Get(ctx context.Context, id int64) (*dto.StudentDetail, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id must be positive")
	}
	row, err := s.agg.store.FetchOne(ctx, models.CollectionStudents, models.StudentColumns, models.Eq("id", id))
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %d not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	student := models.StudentFromRow(row)
	first, last := student.Names()
	return &dto.StudentDetail{
		ID:        student.ID,
		TGID:      student.TGID,
		FullName:  student.FullName,
		FirstName: first,
		LastName:  last,
		Group:     student.Group,
		IsActive:  student.IsActive,
		CreatedAt: student.CreatedAt,
	}, nil
}

// topicsCount adds the student's task and test rows; each half degrades to 0 on its own.
func (s *StudentService) topicsCount(ctx context.Context, studentID int64) int {
	tasks := s.agg.count(ctx, "students.tasks_count", models.CollectionTasks, models.Eq("studentid", studentID)).Or(0)
	tests := s.agg.count(ctx, "students.tests_count", models.CollectionTests, models.Eq("studentid", studentID)).Or(0)
	return tasks + tests
}

func studentListItem(student models.Student, topicsCount int) dto.StudentListItem {
	first, last := student.Names()
	return dto.StudentListItem{
		ID:          student.ID,
		TGID:        student.TGID,
		Username:    "",
		FirstName:   first,
		LastName:    last,
		Level:       student.Group,
		TopicsCount: topicsCount,
		IsActive:    student.IsActive,
		CreatedAt:   student.CreatedAt,
		FullName:    student.FullName,
		Group:       student.Group,
	}
}
