package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/models"
)

const (
	completedStudentThreshold = 3
	newStudentWindow          = 7 * 24 * time.Hour
)

// ProgressConfig tunes the progress report.
type ProgressConfig struct {
	// StudentLimit truncates the returned student list; the totals still cover everyone.
	StudentLimit int
	// RowLimit caps the progress view read. Zero reads the whole view.
	RowLimit int
}

// ProgressService aggregates the student_progress view into per-student statistics.
type ProgressService struct {
	agg aggregator
	cfg ProgressConfig
	now func() time.Time
}

// ProgressServiceParams groups constructor dependencies.
type ProgressServiceParams struct {
	Store       tableReader
	Logger      *zap.Logger
	Metrics     degradeRecorder
	Config      ProgressConfig
	Concurrency int
}

// NewProgressService constructs a ProgressService.
func NewProgressService(params ProgressServiceParams) *ProgressService {
	cfg := params.Config
	if cfg.StudentLimit <= 0 {
		cfg.StudentLimit = 100
	}
	if cfg.RowLimit < 0 {
		cfg.RowLimit = 0
	}
	return &ProgressService{
		agg: newAggregator(params.Store, params.Logger, params.Metrics, params.Concurrency),
		cfg: cfg,
		now: time.Now,
	}
}

// Report returns the progress summary with the student list truncated to the configured limit.
func (s *ProgressService) Report(ctx context.Context) dto.ProgressReport {
	return s.build(ctx, s.cfg.StudentLimit)
}

// FullReport is Report without truncating the student list.
func (s *ProgressService) FullReport(ctx context.Context) dto.ProgressReport {
	return s.build(ctx, 0)
}

type studentGroup struct {
	id     int64
	topics []models.ProgressRow
}

func (s *ProgressService) build(ctx context.Context, limit int) dto.ProgressReport {
	rows := s.agg.page(ctx, "progress.rows", models.Query{
		Collection: models.CollectionProgress,
		Columns:    models.ProgressColumns,
		OrderBy:    []models.Order{{Column: "studentid"}, {Column: "topicid"}},
		Limit:      s.cfg.RowLimit,
	}).Or(nil)

	groups := groupByStudent(rows)

	identities := make([]lookup[models.Row], len(groups))
	fanOut(ctx, s.agg.concurrency, len(groups), func(ctx context.Context, i int) {
		identities[i] = s.agg.one(ctx, "progress.student", models.CollectionStudents, models.StudentColumns, models.Eq("id", groups[i].id))
	})

	report := dto.ProgressReport{Students: []dto.StudentProgress{}}
	weekAgo := s.now().Add(-newStudentWindow)
	completed := make([]int, 0, len(groups))
	students := make([]dto.StudentProgress, 0, len(groups))

	for i, group := range groups {
		progress := studentProgress(group, identities[i])
		students = append(students, progress)
		completed = append(completed, progress.CompletedCount)

		if progress.IsActive {
			report.ActiveStudents++
		}
		if progress.CompletedCount >= completedStudentThreshold {
			report.CompletedStudents++
		}
		if identities[i].OK() {
			if created, ok := identities[i].Value.Time("createdat"); ok && created.After(weekAgo) {
				report.NewStudents++
			}
		}
	}

	scale := 0
	if len(groups) > 0 {
		scale = len(groups[0].topics)
	}
	report.AverageProgress = averageProgress(completed, scale)
	report.TotalStudents = len(students)
	if limit > 0 && len(students) > limit {
		students = students[:limit]
	}
	report.Students = students
	return report
}

// groupByStudent keeps the first-seen order of students and of each student's topics.
func groupByStudent(rows []models.Row) []studentGroup {
	index := make(map[int64]int)
	groups := make([]studentGroup, 0)
	for _, raw := range rows {
		row := models.ProgressRowFromRow(raw)
		pos, ok := index[row.StudentID]
		if !ok {
			pos = len(groups)
			index[row.StudentID] = pos
			groups = append(groups, studentGroup{id: row.StudentID})
		}
		groups[pos].topics = append(groups[pos].topics, row)
	}
	return groups
}

func studentProgress(group studentGroup, identity lookup[models.Row]) dto.StudentProgress {
	progress := dto.StudentProgress{
		ID:          group.id,
		Topics:      make([]dto.TopicProgress, 0, len(group.topics)),
		TotalTopics: len(group.topics),
	}
	if identity.OK() {
		student := models.StudentFromRow(identity.Value)
		progress.TGID = identity.Value.IntPtr("tgid")
		progress.FullName = student.FullName
		progress.FirstName, progress.LastName = student.Names()
		progress.Group = student.Group
		progress.IsActive = student.IsActive
	}

	var practiceScores, testScores []float64
	for _, topic := range group.topics {
		progress.Topics = append(progress.Topics, dto.TopicProgress{
			TopicID:       topic.TopicID,
			TopicName:     topic.TopicName,
			PracticeDone:  topic.PracticeDone,
			PracticeScore: topic.PracticeScore,
			TestDone:      topic.TestDone,
			TestScore:     topic.TestScore,
		})
		if topic.Completed() {
			progress.CompletedCount++
		}
		if topic.PracticeDone && topic.PracticeScore != nil {
			practiceScores = append(practiceScores, *topic.PracticeScore)
		}
		if topic.TestDone && topic.TestScore != nil {
			testScores = append(testScores, *topic.TestScore)
		}
	}

	progress.CompletedTopics = progress.CompletedCount
	progress.PracticeScoreAvg = mean(practiceScores)
	progress.TestScoreAvg = mean(testScores)
	if progress.PracticeScoreAvg > 0 || progress.TestScoreAvg > 0 {
		progress.AverageScore = roundTenth((progress.PracticeScoreAvg + progress.TestScoreAvg) / 2)
	}
	return progress
}

// averageProgress divides all completed topics by students x the topic count of the first
// student read, not by each student's own topic count.
func averageProgress(completed []int, scaleTopics int) float64 {
	if len(completed) == 0 || scaleTopics == 0 {
		return 0
	}
	sum := 0
	for _, c := range completed {
		sum += c
	}
	return roundTenth(float64(sum) / float64(len(completed)*scaleTopics) * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
