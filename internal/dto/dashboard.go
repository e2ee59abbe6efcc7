package dto

import "time"

// Statistics is the dashboard summary.
type Statistics struct {
	TotalStudents  int             `json:"total_students"`
	ActiveStudents int             `json:"active_students"`
	TotalTopics    int             `json:"total_topics"`
	ActiveSessions int             `json:"active_sessions"`
	RecentSessions []RecentSession `json:"recent_sessions"`
}

// RecentSession is a compact session row shown on the dashboard.
type RecentSession struct {
	ID           string `json:"id"`
	TGID         int64  `json:"tgid"`
	Mode         string `json:"mode"`
	TopicID      *int64 `json:"topicid"`
	TopicName    string `json:"topic_name"`
	CurrentIndex int64  `json:"current_index"`
	Total        int64  `json:"total"`
	CreatedAt    string `json:"created_at"`
}

// SystemMetrics is a point-in-time view of the process counters.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	DegradedLookups          uint64    `json:"degraded_lookups"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
