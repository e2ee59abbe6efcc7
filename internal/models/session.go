package models

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultSessionMode  = "learning"
	DefaultSessionTotal = 10
)

// Session is one question/answer run of the bot, as stored in sessionlist.
type Session struct {
	ID           string
	TGID         int64
	Mode         string
	TopicID      *int64
	Total        int64
	CurrentIndex int64
	CreatedAt    string
	Questions    []interface{}
	Answers      []interface{}
}

// SessionFromRow reads a sessionlist row.
func SessionFromRow(r Row) Session {
	return Session{
		ID:           r.String("id", ""),
		TGID:         r.Int("tgid", 0),
		Mode:         r.String("mode", DefaultSessionMode),
		TopicID:      r.IntPtr("topicid"),
		Total:        r.Int("total", DefaultSessionTotal),
		CurrentIndex: r.Int("current_index", 0),
		CreatedAt:    r.String("created_at", ""),
		Questions:    r.List("questions"),
		Answers:      r.List("answers"),
	}
}

// CurrentQuestion is the question at CurrentIndex, or "" when the index is out of range.
func (s Session) CurrentQuestion() string {
	return itemAt(s.Questions, s.CurrentIndex)
}

// CurrentAnswer is the answer at CurrentIndex, or "" when the index is out of range.
func (s Session) CurrentAnswer() string {
	return itemAt(s.Answers, s.CurrentIndex)
}

func itemAt(items []interface{}, index int64) string {
	if index < 0 || index >= int64(len(items)) {
		return ""
	}
	switch v := items[index].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case map[string]interface{}, []interface{}:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	default:
		return fmt.Sprint(v)
	}
}
