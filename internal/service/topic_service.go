package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/models"
)

// Temporary placeholders: topiclist has no columns for these yet.
const (
	placeholderTopicLevel     = "beginner"
	placeholderTopicType      = "learning"
	placeholderTopicLanguage  = "ru"
	placeholderQuestionsCount = 10
)

// TopicService builds the topic listing.
type TopicService struct {
	agg   aggregator
	pages PageConfig
}

// TopicServiceParams groups constructor dependencies.
type TopicServiceParams struct {
	Store       tableReader
	Logger      *zap.Logger
	Metrics     degradeRecorder
	Pages       PageConfig
	Concurrency int
}

// NewTopicService constructs a TopicService.
func NewTopicService(params TopicServiceParams) *TopicService {
	return &TopicService{
		agg:   newAggregator(params.Store, params.Logger, params.Metrics, params.Concurrency),
		pages: params.Pages,
	}
}

// List returns one page of topics by descending id with subject names and completion counts.
func (s *TopicService) List(ctx context.Context, req PageRequest) dto.Page[dto.TopicListItem] {
	req = s.pages.normalise(req)
	start, end := req.bounds()

	rows := s.agg.page(ctx, "topics.page", models.Query{
		Collection: models.CollectionTopics,
		Columns:    models.TopicColumns,
		OrderBy:    []models.Order{{Column: "id", Desc: true}},
	}.Range(start, end)).Or(nil)
	total := s.agg.count(ctx, "topics.total", models.CollectionTopics).Or(len(rows))

	items := make([]dto.TopicListItem, len(rows))
	fanOut(ctx, s.agg.concurrency, len(rows), func(ctx context.Context, i int) {
		topic := models.TopicFromRow(rows[i])
		items[i] = dto.TopicListItem{
			ID:             topic.ID,
			Title:          topic.Name,
			Description:    topic.Description,
			Subject:        s.subjectName(ctx, topic.SubjectID),
			Level:          placeholderTopicLevel,
			TopicType:      placeholderTopicType,
			Language:       placeholderTopicLanguage,
			QuestionsCount: placeholderQuestionsCount,
			CompletedCount: s.completedCount(ctx, topic.ID),
			IsActive:       topic.IsActive,
			CreatedAt:      topic.DateOfCompletion,
			RagLink:        topic.RagLink,
		}
	})

	return newPage(req, items, total)
}

func (s *TopicService) subjectName(ctx context.Context, subjectID *int64) string {
	if subjectID == nil || *subjectID == 0 {
		return ""
	}
	row := s.agg.one(ctx, "topics.subject", models.CollectionSubjects, []string{"subjectname"}, models.Eq("id", *subjectID))
	if !row.OK() {
		return ""
	}
	return models.SubjectFromRow(row.Value).Name
}

func (s *TopicService) completedCount(ctx context.Context, topicID int64) int {
	tasks := s.agg.count(ctx, "topics.tasks_count", models.CollectionTasks, models.Eq("topicid", topicID)).Or(0)
	tests := s.agg.count(ctx, "topics.tests_count", models.CollectionTests, models.Eq("topicid", topicID)).Or(0)
	return tasks + tests
}
