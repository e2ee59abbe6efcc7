package models

// Collections exposed by the bot database. Names match the upstream tables and view.
const (
	CollectionStudents = "stdlist"
	CollectionTopics   = "topiclist"
	CollectionSessions = "sessionlist"
	CollectionSubjects = "subjectlist"
	CollectionTasks    = "tasklist"
	CollectionTests    = "testlist"
	CollectionProgress = "student_progress"
)

// Column sets read by the panel, per collection.
var (
	StudentColumns  = []string{"id", "fullname", "tgid", "isactive", "createdat", "Group"}
	TopicColumns    = []string{"id", "topicname", "topicdesc", "isactive", "subjectid", "date_of_completion", "raglink"}
	SessionColumns  = []string{"id", "tgid", "mode", "topicid", "total", "current_index", "created_at", "questions", "answers"}
	SubjectColumns  = []string{"id", "subjectname"}
	ProgressColumns = []string{"studentid", "topicid", "topicname", "practice_done", "practice_score", "test_done", "test_score"}
	// Task and test rows are only ever counted.
	AttemptColumns = []string{"id", "studentid", "topicid"}
)

// FilterOp enumerates the predicates the store gateway understands.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGte FilterOp = "gte"
	OpIn  FilterOp = "in"
)

// Filter is a single predicate on a column.
type Filter struct {
	Column string
	Op     FilterOp
	Value  interface{}
}

// Eq matches rows whose column equals value.
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Gte matches rows whose column is greater than or equal to value.
func Gte(column string, value interface{}) Filter {
	return Filter{Column: column, Op: OpGte, Value: value}
}

// In matches rows whose column is one of values.
func In(column string, values ...interface{}) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// Order sorts by a column.
type Order struct {
	Column string
	Desc   bool
}

// Query describes a filtered, ordered, range-limited read of one collection.
type Query struct {
	Collection string
	Columns    []string
	Filters    []Filter
	OrderBy    []Order
	Offset     int
	// Limit of zero reads every matching row.
	Limit int
}

// Range limits the query to the inclusive row range [start, end].
func (q Query) Range(start, end int) Query {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	q.Offset = start
	q.Limit = end - start + 1
	return q
}
