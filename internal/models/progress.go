package models

// ProgressRow is one (student, topic) attempt from the student_progress view.
type ProgressRow struct {
	StudentID     int64
	TopicID       *int64
	TopicName     string
	PracticeDone  bool
	PracticeScore *float64
	TestDone      bool
	TestScore     *float64
}

// ProgressRowFromRow reads a student_progress row.
func ProgressRowFromRow(r Row) ProgressRow {
	return ProgressRow{
		StudentID:     r.Int("studentid", 0),
		TopicID:       r.IntPtr("topicid"),
		TopicName:     r.String("topicname", ""),
		PracticeDone:  r.Bool("practice_done", false),
		PracticeScore: r.Float("practice_score"),
		TestDone:      r.Bool("test_done", false),
		TestScore:     r.Float("test_score"),
	}
}

// Completed reports whether either the practice or the test for the topic is done.
func (p ProgressRow) Completed() bool {
	return p.PracticeDone || p.TestDone
}
