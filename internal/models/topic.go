package models

// UntitledTopic is shown for topics stored without a name.
const UntitledTopic = "Untitled"

// Topic is a learning topic as stored in topiclist.
type Topic struct {
	ID          int64
	Name        string
	Description string
	SubjectID   *int64
	IsActive    bool
	// DateOfCompletion doubles as the topic's display timestamp.
	DateOfCompletion string
	RagLink          string
}

// TopicFromRow reads a topiclist row.
func TopicFromRow(r Row) Topic {
	return Topic{
		ID:               r.Int("id", 0),
		Name:             r.String("topicname", UntitledTopic),
		Description:      r.String("topicdesc", ""),
		SubjectID:        r.IntPtr("subjectid"),
		IsActive:         r.Bool("isactive", true),
		DateOfCompletion: r.String("date_of_completion", ""),
		RagLink:          r.String("raglink", ""),
	}
}
