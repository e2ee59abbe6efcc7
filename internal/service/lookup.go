package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorbot-admin/internal/models"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
)

// tableReader is the store gateway as seen by the builders.
type tableReader interface {
	FetchPage(ctx context.Context, q models.Query) ([]models.Row, error)
	Count(ctx context.Context, collection string, filters ...models.Filter) (int, error)
	FetchOne(ctx context.Context, collection string, columns []string, filters ...models.Filter) (models.Row, error)
}

type degradeRecorder interface {
	RecordDegradedLookup(operation, reason string)
}

const (
	reasonNotFound = "not_found"
	reasonCanceled = "canceled"
	reasonError    = "error"
)

// lookup is the outcome of one store read. A failed lookup carries its error and the zero value.
type lookup[T any] struct {
	Value T
	Err   error
}

func (l lookup[T]) OK() bool {
	return l.Err == nil
}

// Or returns the value, or fallback when the lookup failed.
func (l lookup[T]) Or(fallback T) T {
	if l.Err != nil {
		return fallback
	}
	return l.Value
}

// aggregator wraps the store with per-read degradation. Every failure it hands back has been logged and counted.
type aggregator struct {
	store       tableReader
	logger      *zap.Logger
	metrics     degradeRecorder
	concurrency int
}

func newAggregator(store tableReader, logger *zap.Logger, metrics degradeRecorder, concurrency int) aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 8
	}
	return aggregator{store: store, logger: logger, metrics: metrics, concurrency: concurrency}
}

func (a aggregator) count(ctx context.Context, operation, collection string, filters ...models.Filter) lookup[int] {
	total, err := a.store.Count(ctx, collection, filters...)
	if err != nil {
		a.degrade(operation, err, zap.String("collection", collection))
		return lookup[int]{Err: err}
	}
	return lookup[int]{Value: total}
}

func (a aggregator) one(ctx context.Context, operation, collection string, columns []string, filters ...models.Filter) lookup[models.Row] {
	row, err := a.store.FetchOne(ctx, collection, columns, filters...)
	if err != nil {
		a.degrade(operation, err, zap.String("collection", collection))
		return lookup[models.Row]{Err: err}
	}
	return lookup[models.Row]{Value: row}
}

func (a aggregator) page(ctx context.Context, operation string, q models.Query) lookup[[]models.Row] {
	rows, err := a.store.FetchPage(ctx, q)
	if err != nil {
		a.degrade(operation, err, zap.String("collection", q.Collection))
		return lookup[[]models.Row]{Err: err}
	}
	return lookup[[]models.Row]{Value: rows}
}

func (a aggregator) degrade(operation string, err error, fields ...zap.Field) {
	reason := degradeReason(err)
	fields = append(fields, zap.String("operation", operation), zap.String("reason", reason), zap.Error(err))
	if reason == reasonNotFound {
		a.logger.Info("lookup returned no row, using default", fields...)
	} else {
		a.logger.Warn("lookup failed, using default", fields...)
	}
	if a.metrics != nil {
		a.metrics.RecordDegradedLookup(operation, reason)
	}
}

func degradeReason(err error) string {
	switch {
	case errors.Is(err, appErrors.ErrNotFound):
		return reasonNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return reasonCanceled
	default:
		return reasonError
	}
}

// fanOut runs fn for every index in [0, n) with at most limit calls in flight and waits for all of them.
// Callers write results into slots owned by their index.
func fanOut(ctx context.Context, limit, n int, fn func(ctx context.Context, i int)) {
	if n == 0 {
		return
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(ctx, i)
		}(i)
	}
	wg.Wait()
}
