package gocriteria

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RawPager is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPager `json:",inline"`
//	}
type RawPager struct {
	// Page - 1-based page number. Zero means the first page.
	Page int `json:"page"`
	// Limit - maximum number of records per page. Zero keeps the pager's page size.
	Limit int `json:"limit"`
}

// ApplyRawPager applies the payload page size and page number to a pager.
//
// IMPORTANT:
//   - A non-positive Limit keeps the page size already configured on the pager,
//     so a payload can neither reset it to DefaultPerPage nor request NoLimit.
//   - A positive Limit is clamped by the pager's max per page limit.
func ApplyRawPager[T any](pager *Pager[T], raw RawPager) *Pager[T] {
	if raw.Limit > 0 {
		pager = pager.WithMaxPerPage(raw.Limit)
	}

	return pager.WithCurrentPage(raw.Page)
}

// Pager gives page-sliced access over an Adapter. Pages are 1-based.
//
// The item count is fetched once and cached for the lifetime of the pager.
// A Pager is not safe for concurrent use.
type Pager[T any] struct {
	adapter             Adapter[T]
	maxPerPage          int
	maxPerPageLimit     int
	currentPage         int
	normalizeOutOfRange bool
	nbResults           *int64
}

func NewPager[T any](adapter Adapter[T]) *Pager[T] {
	return &Pager[T]{
		adapter:         adapter,
		maxPerPage:      DefaultPerPage,
		maxPerPageLimit: MaxPerPage,
		currentPage:     1,
	}
}

// NewQueryPager wraps a finished query. It is a shorthand for
// NewPager(NewQueryAdapter(db, opts...)).
func NewQueryPager[T any](db *gorm.DB, opts ...QueryAdapterOption) *Pager[T] {
	return NewPager[T](NewQueryAdapter[T](db, opts...))
}

// NewSlicePager wraps a fixed in-memory sequence.
func NewSlicePager[T any](items []T) *Pager[T] {
	return NewPager[T](NewSliceAdapter(items))
}

// WithMaxPerPageLimit sets the upper bound applied by WithMaxPerPage.
// Defaults to MaxPerPage.
func (p *Pager[T]) WithMaxPerPageLimit(limit int) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	if limit > 0 {
		p.maxPerPageLimit = limit
		p.maxPerPage = min(p.maxPerPage, limit)
	}

	return p
}

// WithMaxPerPage sets the page size.
//
// IMPORTANT:
//   - NoLimit puts every item on a single page.
//   - Any other value is normalized with NormalizePerPageMax.
func (p *Pager[T]) WithMaxPerPage(perPage int) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	if perPage == NoLimit {
		p.maxPerPage = NoLimit
		return p
	}

	limit := p.maxPerPageLimit
	if limit <= 0 {
		limit = MaxPerPage
	}
	p.maxPerPage = NormalizePerPageMax(perPage, limit)

	return p
}

// WithCurrentPage sets the 1-based current page. Values below 1 select the
// first page. Whether the page exists is checked when results are requested.
func (p *Pager[T]) WithCurrentPage(page int) *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.currentPage = max(page, 1)

	return p
}

// WithNormalizeOutOfRange makes result retrieval clamp a page past the end to
// the last page instead of failing with ErrPageOutOfRange.
func (p *Pager[T]) WithNormalizeOutOfRange() *Pager[T] {
	if p == nil {
		p = new(Pager[T])
	}

	p.normalizeOutOfRange = true

	return p
}

// GetMaxPerPage returns the page size. NoLimit means a single page.
func (p *Pager[T]) GetMaxPerPage() int {
	if p == nil {
		return 0
	}

	return p.maxPerPage
}

// GetCurrentPage returns the current 1-based page number.
func (p *Pager[T]) GetCurrentPage() int {
	if p == nil {
		return 0
	}

	return p.currentPage
}

// GetAdapter returns the data source of the pager.
func (p *Pager[T]) GetAdapter() Adapter[T] {
	if p == nil {
		return nil
	}

	return p.adapter
}

// NbResults returns the total number of items.
func (p *Pager[T]) NbResults(ctx context.Context) (int64, error) {
	err := p.validate()
	if err != nil {
		return 0, err
	}

	if p.nbResults != nil {
		return *p.nbResults, nil
	}

	total, err := p.adapter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot count results: %w", err)
	}
	p.nbResults = &total

	return total, nil
}

// NbPages returns the number of pages. It is never less than 1.
func (p *Pager[T]) NbPages(ctx context.Context) (int, error) {
	total, err := p.NbResults(ctx)
	if err != nil {
		return 0, err
	}

	return pageCount(total, p.maxPerPage), nil
}

// HaveToPaginate returns true if the items do not fit on a single page.
func (p *Pager[T]) HaveToPaginate(ctx context.Context) (bool, error) {
	pages, err := p.NbPages(ctx)
	if err != nil {
		return false, err
	}

	return pages > 1, nil
}

// HasPreviousPage returns true if the current page is not the first one.
func (p *Pager[T]) HasPreviousPage() bool {
	return p.GetCurrentPage() > 1
}

// PreviousPage returns the previous page number.
func (p *Pager[T]) PreviousPage() (int, error) {
	if !p.HasPreviousPage() {
		return 0, fmt.Errorf("%w: there is no page before %d", ErrPageOutOfRange, p.GetCurrentPage())
	}

	return p.currentPage - 1, nil
}

// HasNextPage returns true if there is a page after the current one.
func (p *Pager[T]) HasNextPage(ctx context.Context) (bool, error) {
	pages, err := p.NbPages(ctx)
	if err != nil {
		return false, err
	}

	return p.currentPage < pages, nil
}

// NextPage returns the next page number.
func (p *Pager[T]) NextPage(ctx context.Context) (int, error) {
	hasNext, err := p.HasNextPage(ctx)
	if err != nil {
		return 0, err
	}

	if !hasNext {
		return 0, fmt.Errorf("%w: there is no page after %d", ErrPageOutOfRange, p.currentPage)
	}

	return p.currentPage + 1, nil
}

// CurrentPageResults returns the items of the current page.
func (p *Pager[T]) CurrentPageResults(ctx context.Context) ([]T, error) {
	page, err := p.resolvePage(ctx, p.GetCurrentPage())
	if err != nil {
		return nil, err
	}
	p.currentPage = page

	return p.adapter.Slice(ctx, pageOffset(page, p.maxPerPage), p.maxPerPage)
}

// PageResults makes page the current page and returns its items.
func (p *Pager[T]) PageResults(ctx context.Context, page int) ([]T, error) {
	return p.WithCurrentPage(page).CurrentPageResults(ctx)
}

// Fetch returns the current page together with the paging metadata.
func (p *Pager[T]) Fetch(ctx context.Context) (PaginationResult[T], error) {
	items, err := p.CurrentPageResults(ctx)
	if err != nil {
		return PaginationResult[T]{}, err
	}

	total, err := p.NbResults(ctx)
	if err != nil {
		return PaginationResult[T]{}, err
	}

	return PaginationResult[T]{
		Items:   items,
		Total:   total,
		Page:    p.currentPage,
		PerPage: p.maxPerPage,
		Pages:   pageCount(total, p.maxPerPage),
	}, nil
}

// resolvePage checks page against the page count, clamping it when the pager
// normalizes out-of-range pages.
func (p *Pager[T]) resolvePage(ctx context.Context, page int) (int, error) {
	pages, err := p.NbPages(ctx)
	if err != nil {
		return 0, err
	}

	if page <= pages {
		return page, nil
	}

	if p.normalizeOutOfRange {
		return pages, nil
	}

	return 0, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, pages)
}

func (p *Pager[T]) validate() error {
	if p == nil {
		return fmt.Errorf("pager is nil")
	}

	if p.adapter == nil {
		return fmt.Errorf("pager has no adapter")
	}

	if p.maxPerPage == 0 || p.maxPerPage < NoLimit {
		return fmt.Errorf("invalid page size %d", p.maxPerPage)
	}

	return nil
}

// PaginationResult is a generic paginated result container.
type PaginationResult[T any] struct {
	// Items result elements of the page.
	Items []T
	// Total number of elements.
	Total int64
	// Page 1-based number of the returned page.
	Page int
	// PerPage effective page size used for the query.
	PerPage int
	// Pages total number of pages.
	Pages int
}
