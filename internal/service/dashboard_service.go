package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/dto"
	"github.com/noah-isme/tutorbot-admin/internal/models"
)

const activeSessionWindow = 24 * time.Hour

var recentSessionColumns = []string{"id", "tgid", "mode", "topicid", "current_index", "total", "created_at"}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	RecentSessions int
}

// DashboardService composes the dashboard statistics from independent reads.
type DashboardService struct {
	agg aggregator
	cfg DashboardServiceConfig
	now func() time.Time
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Store       tableReader
	Logger      *zap.Logger
	Metrics     degradeRecorder
	Config      DashboardServiceConfig
	Concurrency int
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.RecentSessions <= 0 {
		cfg.RecentSessions = 10
	}
	return &DashboardService{
		agg: newAggregator(params.Store, params.Logger, params.Metrics, params.Concurrency),
		cfg: cfg,
		now: time.Now,
	}
}

// Statistics returns the dashboard summary. Each figure degrades to zero on its own.
func (s *DashboardService) Statistics(ctx context.Context) dto.Statistics {
	var stats dto.Statistics
	var recent []models.Row
	since := s.now().UTC().Add(-activeSessionWindow)

	reads := []func(ctx context.Context){
		func(ctx context.Context) {
			stats.TotalStudents = s.agg.count(ctx, "statistics.total_students", models.CollectionStudents).Or(0)
		},
		func(ctx context.Context) {
			stats.ActiveStudents = s.agg.count(ctx, "statistics.active_students", models.CollectionStudents, models.Eq("isactive", true)).Or(0)
		},
		func(ctx context.Context) {
			stats.TotalTopics = s.agg.count(ctx, "statistics.total_topics", models.CollectionTopics, models.Eq("isactive", true)).Or(0)
		},
		func(ctx context.Context) {
			stats.ActiveSessions = s.agg.count(ctx, "statistics.active_sessions", models.CollectionSessions, models.Gte("created_at", since)).Or(0)
		},
		func(ctx context.Context) {
			recent = s.agg.page(ctx, "statistics.recent_sessions", models.Query{
				Collection: models.CollectionSessions,
				Columns:    recentSessionColumns,
				OrderBy:    []models.Order{{Column: "created_at", Desc: true}},
				Limit:      s.cfg.RecentSessions,
			}).Or(nil)
		},
	}
	fanOut(ctx, s.agg.concurrency, len(reads), func(ctx context.Context, i int) { reads[i](ctx) })

	stats.RecentSessions = make([]dto.RecentSession, len(recent))
	fanOut(ctx, s.agg.concurrency, len(recent), func(ctx context.Context, i int) {
		session := models.SessionFromRow(recent[i])
		stats.RecentSessions[i] = dto.RecentSession{
			ID:           session.ID,
			TGID:         session.TGID,
			Mode:         session.Mode,
			TopicID:      session.TopicID,
			TopicName:    s.agg.topicName(ctx, "statistics.topic_name", session.TopicID),
			CurrentIndex: session.CurrentIndex,
			Total:        session.Total,
			CreatedAt:    session.CreatedAt,
		}
	})

	return stats
}
