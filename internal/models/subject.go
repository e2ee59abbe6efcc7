package models

// Subject groups topics, e.g. "Mathematics".
type Subject struct {
	ID   int64
	Name string
}

// SubjectFromRow reads a subjectlist row.
func SubjectFromRow(r Row) Subject {
	return Subject{ID: r.Int("id", 0), Name: r.String("subjectname", "")}
}
