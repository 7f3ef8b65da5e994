package gocriteria

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Adapter is the data source behind a Pager.
type Adapter[T any] interface {
	// Count returns the total number of items.
	Count(ctx context.Context) (int64, error)
	// Slice returns at most length items starting at offset. A NoLimit length
	// returns everything after offset.
	Slice(ctx context.Context, offset, length int) ([]T, error)
}

// QueryAdapter pages over a GORM query. Nothing is executed until Count or
// Slice is called.
type QueryAdapter[T any] struct {
	db            *gorm.DB
	countSubquery bool
}

type QueryAdapterOption func(*queryAdapterOptions)

type queryAdapterOptions struct {
	countSubquery bool
}

// WithCountSubquery counts rows as
//
//	SELECT count(*) FROM (<query>) AS count_subquery
//
// instead of replacing the select list with count(*). It is required when the
// query has GROUP BY / DISTINCT semantics that a plain count would break.
//
// IMPORTANT:
// It is off by default and must stay off for join-heavy queries: the database
// has to materialize the whole inner query, which degrades badly on large
// joined datasets.
func WithCountSubquery(enabled bool) QueryAdapterOption {
	return func(o *queryAdapterOptions) {
		o.countSubquery = enabled
	}
}

// NewQueryAdapter wraps a finished query. The query is detached into its own
// session, so Count and Slice never leak clauses into each other.
func NewQueryAdapter[T any](db *gorm.DB, opts ...QueryAdapterOption) *QueryAdapter[T] {
	options := queryAdapterOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return &QueryAdapter[T]{
		db:            db.Session(&gorm.Session{}),
		countSubquery: options.countSubquery,
	}
}

// Count - implements Adapter. ORDER BY is dropped by GORM for the count query.
func (a *QueryAdapter[T]) Count(ctx context.Context) (int64, error) {
	tx := a.db.WithContext(ctx)
	if a.countSubquery {
		tx = a.db.Session(&gorm.Session{NewDB: true, Context: ctx}).
			Table("(?) AS count_subquery", a.db)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("cannot count items: %w", err)
	}

	return total, nil
}

// Slice - implements Adapter.
func (a *QueryAdapter[T]) Slice(ctx context.Context, offset, length int) ([]T, error) {
	items := make([]T, 0)

	err := pageWindow{offset: offset, limit: length}.
		Apply(a.db.WithContext(ctx)).
		Find(&items).
		Error
	if err != nil {
		return nil, fmt.Errorf("cannot fetch items: %w", err)
	}

	return items, nil
}

// Query returns the underlying query.
func (a *QueryAdapter[T]) Query() *gorm.DB {
	return a.db
}

// pageWindow is the LIMIT/OFFSET part of a page query.
type pageWindow struct {
	offset int
	limit  int
}

// Apply applies the window to a gorm query. A zero offset is omitted and a
// NoLimit limit leaves the query unbounded.
func (w pageWindow) Apply(db *gorm.DB) *gorm.DB {
	if w.offset > 0 {
		db = db.Offset(w.offset)
	}

	if w.limit != NoLimit {
		db = db.Limit(w.limit)
	}

	return db
}

// SliceAdapter pages over a fixed in-memory sequence.
type SliceAdapter[T any] struct {
	items []T
}

func NewSliceAdapter[T any](items []T) *SliceAdapter[T] {
	return &SliceAdapter[T]{items: items}
}

// Count - implements Adapter.
func (a *SliceAdapter[T]) Count(_ context.Context) (int64, error) {
	return int64(len(a.items)), nil
}

// Slice - implements Adapter. Out-of-range offsets return an empty slice.
func (a *SliceAdapter[T]) Slice(_ context.Context, offset, length int) ([]T, error) {
	end := lo.Ternary(length == NoLimit, len(a.items), offset+length)

	return lo.Slice(a.items, offset, end), nil
}

var (
	_ Adapter[any] = (*QueryAdapter[any])(nil)
	_ Adapter[any] = (*SliceAdapter[any])(nil)
)
