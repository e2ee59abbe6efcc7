package dto

// ProgressReport summarises per-student progress across the progress view.
type ProgressReport struct {
	AverageProgress   float64           `json:"average_progress"`
	ActiveStudents    int               `json:"active_students"`
	CompletedStudents int               `json:"completed_students"`
	NewStudents       int               `json:"new_students"`
	Students          []StudentProgress `json:"students"`
	TotalStudents     int               `json:"total_students"`
}

// StudentProgress is the derived progress of one student.
type StudentProgress struct {
	ID               int64           `json:"id"`
	TGID             *int64          `json:"tgid"`
	Username         string          `json:"username"`
	FullName         string          `json:"fullname"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	Group            string          `json:"group"`
	IsActive         bool            `json:"is_active"`
	Topics           []TopicProgress `json:"topics"`
	CompletedCount   int             `json:"completed_count"`
	CompletedTopics  int             `json:"completed_topics"`
	TotalTopics      int             `json:"total_topics"`
	PracticeScoreAvg float64         `json:"practice_score_avg"`
	TestScoreAvg     float64         `json:"test_score_avg"`
	AverageScore     float64         `json:"average_score"`
	LastActivity     *string         `json:"last_activity"`
}

// TopicProgress is one topic entry of a student's progress.
type TopicProgress struct {
	TopicID       *int64   `json:"topicid"`
	TopicName     string   `json:"topicname"`
	PracticeDone  bool     `json:"practice_done"`
	PracticeScore *float64 `json:"practice_score"`
	TestDone      bool     `json:"test_done"`
	TestScore     *float64 `json:"test_score"`
}
