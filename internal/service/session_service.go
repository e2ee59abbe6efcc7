package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/models"
)

// SessionService builds the session listing.
type SessionService struct {
	agg   aggregator
	pages PageConfig
}

// SessionServiceParams groups constructor dependencies.
type SessionServiceParams struct {
	Store       tableReader
	Logger      *zap.Logger
	Metrics     degradeRecorder
	Pages       PageConfig
	Concurrency int
}

// NewSessionService constructs a SessionService.
func NewSessionService(params SessionServiceParams) *SessionService {
	return &SessionService{
		agg:   newAggregator(params.Store, params.Logger, params.Metrics, params.Concurrency),
		pages: params.Pages,
	}
}

// List returns one page of sessions, newest first.
func (s *SessionService) List(ctx context.Context, req PageRequest) dto.Page[dto.SessionListItem] {
	req = s.pages.normalise(req)
	start, end := req.bounds()

	rows := s.agg.page(ctx, "sessions.page", models.Query{
		Collection: models.CollectionSessions,
		Columns:    models.SessionColumns,
		OrderBy:    []models.Order{{Column: "created_at", Desc: true}},
	}.Range(start, end)).Or(nil)
	total := s.agg.count(ctx, "sessions.total", models.CollectionSessions).Or(len(rows))

	items := make([]dto.SessionListItem, len(rows))
	fanOut(ctx, s.agg.concurrency, len(rows), func(ctx context.Context, i int) {
		session := models.SessionFromRow(rows[i])
		items[i] = dto.SessionListItem{
			ID:              session.ID,
			TGID:            session.TGID,
			Mode:            session.Mode,
			TopicID:         session.TopicID,
			TopicName:       s.agg.topicName(ctx, "sessions.topic_name", session.TopicID),
			CurrentQuestion: session.CurrentQuestion(),
			CurrentAnswer:   session.CurrentAnswer(),
			// sessionlist carries neither a score nor an active flag yet.
			Score:        nil,
			IsActive:     true,
			CurrentIndex: session.CurrentIndex,
			Total:        session.Total,
			CreatedAt:    session.CreatedAt,
		}
	})

	return newPage(req, items, total)
}

// topicName resolves a session's topic label. A failed lookup yields "Topic <id>"; no topic yields "".
func (a aggregator) topicName(ctx context.Context, operation string, topicID *int64) string {
	if topicID == nil || *topicID == 0 {
		return ""
	}
	row := a.one(ctx, operation, models.CollectionTopics, []string{"topicname"}, models.Eq("id", *topicID))
	if !row.OK() {
		return fmt.Sprintf("Topic %d", *topicID)
	}
	return row.Value.String("topicname", "")
}
