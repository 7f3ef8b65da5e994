package gocriteria

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository builds filtered, sorted and paginated queries over the table of
// the GORM model T.
//
// Every Create*Paginator call works on its own *gorm.DB chain; a query passed
// in by the caller must not be shared with concurrent calls.
type Repository[T any] struct {
	db     *gorm.DB
	table  string
	cfg    Config
	logger *zap.Logger
}

type Option func(*repositoryOptions)

type repositoryOptions struct {
	table  string
	cfg    Config
	logger *zap.Logger
}

// WithTable overrides the table name resolved from the model schema.
func WithTable(table string) Option {
	return func(o *repositoryOptions) {
		o.table = table
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(o *repositoryOptions) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger used for debug output. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *repositoryOptions) {
		o.logger = logger
	}
}

func NewRepository[T any](db *gorm.DB, opts ...Option) (*Repository[T], error) {
	if db == nil {
		return nil, fmt.Errorf("cannot create repository: db is nil")
	}

	options := repositoryOptions{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	err := options.cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("cannot create repository: %w", err)
	}

	table := options.table
	if table == "" {
		stmt := &gorm.Statement{DB: db}
		err = stmt.Parse(new(T))
		if err != nil {
			return nil, fmt.Errorf("cannot resolve table of %T: %w", *new(T), err)
		}

		table = stmt.Schema.Table
	}

	return &Repository[T]{
		db:     db,
		table:  table,
		cfg:    options.cfg,
		logger: options.logger,
	}, nil
}

// Table returns the table the repository queries.
func (r *Repository[T]) Table() string {
	return r.table
}

// CreateQueryBuilder starts a query over the repository table, aliased as
// alias: SELECT * FROM <table> <alias>.
func (r *Repository[T]) CreateQueryBuilder(alias string) *gorm.DB {
	return r.db.Table(strings.TrimSpace(r.table + " " + alias))
}

// CreatePaginator filters the repository table with equality semantics, sorts
// it and wraps it into a pager.
func (r *Repository[T]) CreatePaginator(alias string, eqs Equalities, sorting Orderings) (*Pager[T], error) {
	return r.CreateAdvancedPaginator(r.CreateQueryBuilder(alias), alias, eqs, sorting)
}

// CreateAdvancedPaginator is CreatePaginator over a caller-built query, e.g. one
// with joins or extra conditions.
func (r *Repository[T]) CreateAdvancedPaginator(db *gorm.DB, alias string, eqs Equalities, sorting Orderings) (*Pager[T], error) {
	db, err := eqs.apply(db, alias, r.cfg.QualifyMode)
	if err != nil {
		return nil, fmt.Errorf("cannot create paginator: %w", err)
	}

	db, err = sorting.applyAliased(db, alias, r.cfg.QualifyMode)
	if err != nil {
		return nil, fmt.Errorf("cannot create paginator: %w", err)
	}

	r.logger.Debug("paginator created",
		zap.String("table", r.table),
		zap.String("alias", alias),
		zap.Int("equalities", len(eqs)),
		zap.Strings("sorting", sorting.ToSQLSlice()),
	)

	return r.paginator(db), nil
}

// CreateOperatorPaginator filters a caller-built query with explicit
// operators, sorts it and wraps it into a pager.
func (r *Repository[T]) CreateOperatorPaginator(db *gorm.DB, alias string, criteria Criteria, sorting Orderings) (*Pager[T], error) {
	db, err := criteria.apply(db, alias, r.cfg.QualifyMode)
	if err != nil {
		return nil, fmt.Errorf("cannot create operator paginator: %w", err)
	}

	db, err = sorting.applyAliased(db, alias, r.cfg.QualifyMode)
	if err != nil {
		return nil, fmt.Errorf("cannot create operator paginator: %w", err)
	}

	r.logger.Debug("operator paginator created",
		zap.String("table", r.table),
		zap.String("alias", alias),
		zap.Int("criteria", len(criteria)),
		zap.Strings("sorting", sorting.ToSQLSlice()),
	)

	return r.paginator(db), nil
}

// CreateOperatorPaginatorFromSlices accepts the parallel keys/operators/values
// convention. An empty key skips its index. Between bounds are read according
// to Config.BetweenMode.
func (r *Repository[T]) CreateOperatorPaginatorFromSlices(
	db *gorm.DB,
	alias string,
	keys []string,
	operators []string,
	values []any,
	sorting Orderings,
) (*Pager[T], error) {
	criteria, err := ZipCriteria(keys, operators, values, r.cfg.BetweenMode)
	if err != nil {
		return nil, fmt.Errorf("cannot create operator paginator: %w", err)
	}

	return r.CreateOperatorPaginator(db, alias, criteria, sorting)
}

// CreateArrayPaginator wraps a fixed in-memory sequence into a pager using the
// repository page size settings.
func (r *Repository[T]) CreateArrayPaginator(items []T) *Pager[T] {
	return r.configure(NewSlicePager(items))
}

func (r *Repository[T]) paginator(db *gorm.DB) *Pager[T] {
	return r.configure(NewQueryPager[T](db, WithCountSubquery(r.cfg.CountSubquery)))
}

func (r *Repository[T]) configure(pager *Pager[T]) *Pager[T] {
	return pager.
		WithMaxPerPageLimit(r.cfg.MaxPerPage).
		WithMaxPerPage(r.cfg.DefaultPerPage)
}
