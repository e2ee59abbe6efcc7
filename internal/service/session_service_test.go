package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorbot-admin/internal/models"
)

func TestSessionServiceList(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.add(models.CollectionTopics, models.Row{"id": int64(1), "topicname": "Fractions"})
	store.add(models.CollectionSessions,
		models.Row{"id": "s-old", "tgid": int64(1), "topicid": int64(1), "current_index": int64(1), "created_at": base,
			"questions": []byte(`["q0", "q1"]`), "answers": []byte(`["a0"]`)},
		models.Row{"id": "s-new", "tgid": int64(2), "mode": "test", "topicid": nil, "total": int64(5), "created_at": base.Add(time.Hour),
			"questions": []byte(`[]`), "answers": nil},
	)

	svc := NewSessionService(SessionServiceParams{Store: store})
	page := svc.List(context.Background(), PageRequest{})

	require.Len(t, page.Data, 2)
	newest, oldest := page.Data[0], page.Data[1]

	assert.Equal(t, "s-new", newest.ID)
	assert.Equal(t, "test", newest.Mode)
	assert.Equal(t, "", newest.TopicName)
	assert.Equal(t, int64(5), newest.Total)
	assert.Equal(t, "", newest.CurrentQuestion)
	assert.True(t, newest.IsActive)
	assert.Nil(t, newest.Score)

	assert.Equal(t, "s-old", oldest.ID)
	assert.Equal(t, models.DefaultSessionMode, oldest.Mode)
	assert.Equal(t, int64(models.DefaultSessionTotal), oldest.Total)
	assert.Equal(t, "Fractions", oldest.TopicName)
	assert.Equal(t, "q1", oldest.CurrentQuestion)
	assert.Equal(t, "", oldest.CurrentAnswer)
}

func TestSessionServiceTopicNameFallback(t *testing.T) {
	store := newFakeStore()
	store.add(models.CollectionSessions, models.Row{"id": "s1", "topicid": int64(5), "created_at": time.Now()})
	store.fail = failOn("one", models.CollectionTopics, "", errors.New("timeout"))

	svc := NewSessionService(SessionServiceParams{Store: store})
	page := svc.List(context.Background(), PageRequest{})

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Topic 5", page.Data[0].TopicName)
}

func TestSessionServiceCanceledContextDegrades(t *testing.T) {
	store := newFakeStore()
	store.add(models.CollectionSessions, models.Row{"id": "s1"})
	metrics := newRecordingMetrics()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewSessionService(SessionServiceParams{Store: store, Metrics: metrics})
	page := svc.List(ctx, PageRequest{})

	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, metrics.count("sessions.page/canceled"))
}
