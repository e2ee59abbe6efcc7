package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/tutorbot-admin/internal/models"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
)

// fakeStore is an in-memory tableReader. fail, when set, can reject any read.
type fakeStore struct {
	tables map[string][]models.Row
	fail   func(op, collection string, filters []models.Filter) error

	mu      sync.Mutex
	queries []models.Query
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: map[string][]models.Row{}}
}

func (f *fakeStore) add(collection string, rows ...models.Row) {
	f.tables[collection] = append(f.tables[collection], rows...)
}

func (f *fakeStore) check(op, collection string, filters []models.Filter) error {
	if f.fail == nil {
		return nil
	}
	return f.fail(op, collection, filters)
}

func (f *fakeStore) FetchPage(ctx context.Context, q models.Query) ([]models.Row, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.check("page", q.Collection, q.Filters); err != nil {
		return nil, err
	}
	rows := f.filter(q.Collection, q.Filters)
	if len(q.OrderBy) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, order := range q.OrderBy {
				c := compareValues(rows[i][order.Column], rows[j][order.Column])
				if c == 0 {
					continue
				}
				if order.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Offset >= len(rows) {
		return []models.Row{}, nil
	}
	rows = rows[q.Offset:]
	if q.Limit > 0 && q.Limit < len(rows) {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

func (f *fakeStore) Count(ctx context.Context, collection string, filters ...models.Filter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := f.check("count", collection, filters); err != nil {
		return 0, err
	}
	return len(f.filter(collection, filters)), nil
}

func (f *fakeStore) FetchOne(ctx context.Context, collection string, _ []string, filters ...models.Filter) (models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.check("one", collection, filters); err != nil {
		return nil, err
	}
	rows := f.filter(collection, filters)
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, collection+" row not found")
	}
	return rows[0], nil
}

func (f *fakeStore) filter(collection string, filters []models.Filter) []models.Row {
	result := make([]models.Row, 0)
	for _, row := range f.tables[collection] {
		if matches(row, filters) {
			result = append(result, row)
		}
	}
	return result
}

func matches(row models.Row, filters []models.Filter) bool {
	for _, filter := range filters {
		value := row[filter.Column]
		switch filter.Op {
		case models.OpEq:
			if compareValues(value, filter.Value) != 0 {
				return false
			}
		case models.OpGte:
			if compareValues(value, filter.Value) < 0 {
				return false
			}
		case models.OpIn:
			found := false
			for _, candidate := range filter.Value.([]interface{}) {
				if compareValues(value, candidate) == 0 {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// failOn rejects reads matching op and collection, and, when column is set, only those filtering on it.
func failOn(op, collection, column string, err error) func(string, string, []models.Filter) error {
	return func(gotOp, gotCollection string, filters []models.Filter) error {
		if gotOp != op || gotCollection != collection {
			return nil
		}
		if column == "" {
			return err
		}
		for _, filter := range filters {
			if filter.Column == column {
				return err
			}
		}
		return nil
	}
}

type recordingMetrics struct {
	mu       sync.Mutex
	degraded map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{degraded: map[string]int{}}
}

func (r *recordingMetrics) RecordDegradedLookup(operation, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded[operation+"/"+reason]++
}

func (r *recordingMetrics) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded[key]
}

func ptr[T any](v T) *T {
	return &v
}
