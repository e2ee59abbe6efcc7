package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorbot-admin/internal/models"
)

func TestTopicServiceList(t *testing.T) {
	store := newFakeStore()
	store.add(models.CollectionSubjects, models.Row{"id": int64(1), "subjectname": "Mathematics"})
	store.add(models.CollectionTopics,
		models.Row{"id": int64(1), "topicname": "Fractions", "topicdesc": "Intro", "subjectid": int64(1), "isactive": true, "date_of_completion": "2024-02-01T00:00:00", "raglink": "https://docs.example/fractions"},
		models.Row{"id": int64(2), "topicname": nil, "subjectid": int64(0), "isactive": false},
		models.Row{"id": int64(3), "topicname": "Orphan", "subjectid": int64(99)},
	)
	store.add(models.CollectionTasks, models.Row{"id": int64(1), "topicid": int64(1)})
	store.add(models.CollectionTests, models.Row{"id": int64(1), "topicid": int64(1)}, models.Row{"id": int64(2), "topicid": int64(3)})

	svc := NewTopicService(TopicServiceParams{Store: store, Pages: PageConfig{DefaultSize: 20}})
	page := svc.List(context.Background(), PageRequest{})

	require.Len(t, page.Data, 3)
	assert.Equal(t, 3, page.Total)

	orphan, untitled, fractions := page.Data[0], page.Data[1], page.Data[2]
	assert.Equal(t, int64(3), orphan.ID)
	assert.Equal(t, "", orphan.Subject)
	assert.Equal(t, 1, orphan.CompletedCount)

	assert.Equal(t, models.UntitledTopic, untitled.Title)
	assert.Equal(t, "", untitled.Subject)
	assert.False(t, untitled.IsActive)

	assert.Equal(t, "Mathematics", fractions.Subject)
	assert.Equal(t, 2, fractions.CompletedCount)
	assert.Equal(t, "2024-02-01T00:00:00", fractions.CreatedAt)
	assert.Equal(t, "https://docs.example/fractions", fractions.RagLink)
	assert.Equal(t, "beginner", fractions.Level)
	assert.Equal(t, "learning", fractions.TopicType)
	assert.Equal(t, "ru", fractions.Language)
	assert.Equal(t, 10, fractions.QuestionsCount)
}

func TestTopicServiceSubjectLookupFailure(t *testing.T) {
	store := newFakeStore()
	store.add(models.CollectionSubjects, models.Row{"id": int64(1), "subjectname": "Physics"})
	store.add(models.CollectionTopics, models.Row{"id": int64(1), "topicname": "Motion", "subjectid": int64(1)})
	store.fail = failOn("one", models.CollectionSubjects, "", errors.New("reset"))
	metrics := newRecordingMetrics()

	svc := NewTopicService(TopicServiceParams{Store: store, Metrics: metrics})
	page := svc.List(context.Background(), PageRequest{})

	require.Len(t, page.Data, 1)
	assert.Equal(t, "", page.Data[0].Subject)
	assert.Equal(t, "Motion", page.Data[0].Title)
	assert.Equal(t, 1, metrics.count("topics.subject/error"))
}
