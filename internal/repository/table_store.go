package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/tutorbot-admin/internal/models"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
)

// QueryObserver receives the duration of every store round trip.
type QueryObserver interface {
	ObserveDBQuery(operation string, duration time.Duration)
}

// DefaultSchema whitelists the collections and columns the panel may read.
func DefaultSchema() map[string][]string {
	return map[string][]string{
		models.CollectionStudents: models.StudentColumns,
		models.CollectionTopics:   models.TopicColumns,
		models.CollectionSessions: models.SessionColumns,
		models.CollectionSubjects: models.SubjectColumns,
		models.CollectionTasks:    models.AttemptColumns,
		models.CollectionTests:    models.AttemptColumns,
		models.CollectionProgress: models.ProgressColumns,
	}
}

// TableStore is a thin read gateway over named collections. It knows nothing about aggregation.
type TableStore struct {
	db       *sqlx.DB
	schema   map[string]map[string]struct{}
	timeout  time.Duration
	observer QueryObserver
}

// TableStoreOption customises a TableStore.
type TableStoreOption func(*TableStore)

// WithQueryTimeout bounds every store call.
func WithQueryTimeout(timeout time.Duration) TableStoreOption {
	return func(s *TableStore) { s.timeout = timeout }
}

// WithQueryObserver reports query durations.
func WithQueryObserver(observer QueryObserver) TableStoreOption {
	return func(s *TableStore) { s.observer = observer }
}

// WithSchema replaces the default collection whitelist.
func WithSchema(schema map[string][]string) TableStoreOption {
	return func(s *TableStore) { s.schema = indexSchema(schema) }
}

// NewTableStore constructs a TableStore.
func NewTableStore(db *sqlx.DB, opts ...TableStoreOption) *TableStore {
	store := &TableStore{db: db, schema: indexSchema(DefaultSchema())}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// FetchPage returns the rows matching q in order.
func (s *TableStore) FetchPage(ctx context.Context, q models.Query) ([]models.Row, error) {
	columns, err := s.selectList(q.Collection, q.Columns)
	if err != nil {
		return nil, err
	}
	where, args, empty, err := s.whereClause(q.Collection, q.Filters)
	if err != nil {
		return nil, err
	}
	if empty {
		return []models.Row{}, nil
	}
	orderBy, err := s.orderClause(q.Collection, q.OrderBy)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s%s", columns, pq.QuoteIdentifier(q.Collection), where, orderBy)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", q.Offset)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer s.observe("fetch_page:"+q.Collection, time.Now())

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", q.Collection, err)
	}
	defer rows.Close()

	result := make([]models.Row, 0)
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan %s: %w", q.Collection, err)
		}
		result = append(result, models.Row(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", q.Collection, err)
	}
	return result, nil
}

// Count returns the number of rows matching the filters.
func (s *TableStore) Count(ctx context.Context, collection string, filters ...models.Filter) (int, error) {
	if _, ok := s.schema[collection]; !ok {
		return 0, unknownCollection(collection)
	}
	where, args, empty, err := s.whereClause(collection, filters)
	if err != nil {
		return 0, err
	}
	if empty {
		return 0, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	defer s.observe("count:"+collection, time.Now())

	var total int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", pq.QuoteIdentifier(collection), where)
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return total, nil
}

// FetchOne returns the first matching row or ErrNotFound.
func (s *TableStore) FetchOne(ctx context.Context, collection string, columns []string, filters ...models.Filter) (models.Row, error) {
	rows, err := s.FetchPage(ctx, models.Query{Collection: collection, Columns: columns, Filters: filters, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s row not found", collection))
	}
	return rows[0], nil
}

// Ping checks database connectivity.
func (s *TableStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *TableStore) selectList(collection string, columns []string) (string, error) {
	allowed, ok := s.schema[collection]
	if !ok {
		return "", unknownCollection(collection)
	}
	if len(columns) == 0 {
		return "*", nil
	}
	quoted := make([]string, 0, len(columns))
	for _, column := range columns {
		if _, ok := allowed[column]; !ok {
			return "", unknownColumn(collection, column)
		}
		quoted = append(quoted, pq.QuoteIdentifier(column))
	}
	return strings.Join(quoted, ", "), nil
}

// whereClause reports empty=true when an IN filter has no values, so no row can match.
func (s *TableStore) whereClause(collection string, filters []models.Filter) (string, []interface{}, bool, error) {
	if len(filters) == 0 {
		return "", nil, false, nil
	}
	allowed := s.schema[collection]
	conditions := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters))

	for _, filter := range filters {
		if _, ok := allowed[filter.Column]; !ok {
			return "", nil, false, unknownColumn(collection, filter.Column)
		}
		column := pq.QuoteIdentifier(filter.Column)
		switch filter.Op {
		case models.OpEq:
			args = append(args, filter.Value)
			conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
		case models.OpGte:
			args = append(args, filter.Value)
			conditions = append(conditions, fmt.Sprintf("%s >= $%d", column, len(args)))
		case models.OpIn:
			values, _ := filter.Value.([]interface{})
			if len(values) == 0 {
				return "", nil, true, nil
			}
			placeholders := make([]string, 0, len(values))
			for _, value := range values {
				args = append(args, value)
				placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
			}
			conditions = append(conditions, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
		default:
			return "", nil, false, fmt.Errorf("unsupported filter operator %q", filter.Op)
		}
	}

	return " WHERE " + strings.Join(conditions, " AND "), args, false, nil
}

func (s *TableStore) orderClause(collection string, orders []models.Order) (string, error) {
	if len(orders) == 0 {
		return "", nil
	}
	allowed := s.schema[collection]
	parts := make([]string, 0, len(orders))
	for _, order := range orders {
		if _, ok := allowed[order.Column]; !ok {
			return "", unknownColumn(collection, order.Column)
		}
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		parts = append(parts, pq.QuoteIdentifier(order.Column)+" "+direction)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func (s *TableStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *TableStore) observe(operation string, started time.Time) {
	if s.observer != nil {
		s.observer.ObserveDBQuery(operation, time.Since(started))
	}
}

func indexSchema(schema map[string][]string) map[string]map[string]struct{} {
	indexed := make(map[string]map[string]struct{}, len(schema))
	for collection, columns := range schema {
		set := make(map[string]struct{}, len(columns))
		for _, column := range columns {
			set[column] = struct{}{}
		}
		indexed[collection] = set
	}
	return indexed
}

func unknownCollection(collection string) error {
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown collection %q", collection))
}

func unknownColumn(collection, column string) error {
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown column %q on %s", column, collection))
}

// IsNotFound reports whether err is a not-found result rather than a store failure.
func IsNotFound(err error) bool {
	return errors.Is(err, appErrors.ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
