package dto

// Page is the paginated listing envelope shared by students, topics and sessions.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// StudentListItem is one row of the student listing.
type StudentListItem struct {
	ID          int64  `json:"id"`
	TGID        int64  `json:"tgid"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Level       string `json:"level"`
	TopicsCount int    `json:"topics_count"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	FullName    string `json:"fullname"`
	Group       string `json:"group"`
}

// StudentDetail is returned by the student lookup endpoint.
type StudentDetail struct {
	ID        int64  `json:"id"`
	TGID      int64  `json:"tgid"`
	FullName  string `json:"fullname"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Group     string `json:"group"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// TopicListItem is one row of the topic listing.
type TopicListItem struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Subject        string `json:"subject"`
	Level          string `json:"level"`
	TopicType      string `json:"topic_type"`
	Language       string `json:"language"`
	QuestionsCount int    `json:"questions_count"`
	CompletedCount int    `json:"completed_count"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	RagLink        string `json:"raglink"`
}

// SessionListItem is one row of the session listing.
type SessionListItem struct {
	ID              string   `json:"id"`
	TGID            int64    `json:"tgid"`
	Mode            string   `json:"mode"`
	TopicID         *int64   `json:"topicid"`
	TopicName       string   `json:"topic_name"`
	CurrentQuestion string   `json:"current_question"`
	CurrentAnswer   string   `json:"current_answer"`
	Score           *float64 `json:"score"`
	CurrentIndex    int64    `json:"current_index"`
	Total           int64    `json:"total"`
	CreatedAt       string   `json:"created_at"`
	IsActive        bool     `json:"is_active"`
}
