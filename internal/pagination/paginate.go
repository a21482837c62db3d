// Package pagination builds page envelopes over any source that can count
// and fetch a range of its rows.
package pagination

import (
	"context"
	"math"

	"github.com/baechuer/events-api/internal/domain"
)

// Source is a read-only, already-filtered data set.
type Source[T any] interface {
	// Count returns the number of rows matching the source predicates,
	// ignoring any offset/limit.
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

type Options struct {
	Page  int
	Limit int
	// Total requests an extra count query so Last can be the real last page.
	Total bool
}

// Page is the page envelope returned to clients.
//
// First is always 1. Last is the true final page when Total was requested and
// echoes the current page otherwise.
type Page[T any] struct {
	First int  `json:"first"`
	Last  int  `json:"last"`
	Limit int  `json:"limit"`
	Data  []T  `json:"data"`
	Total *int `json:"total,omitempty"`
}

func (o Options) Validate() error {
	if o.Limit <= 0 {
		return domain.ErrBadRequestMeta("invalid pagination", map[string]string{
			"limit": "must be > 0",
		})
	}
	if o.Page <= 0 {
		return domain.ErrBadRequestMeta("invalid pagination", map[string]string{
			"page": "must be >= 1",
		})
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return domain.ErrBadRequestMeta("invalid pagination", map[string]string{
			"page": "out of range",
		})
	}
	return nil
}

// Offset is the number of rows skipped for o. Only meaningful after Validate.
func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

func Paginate[T any](ctx context.Context, src Source[T], opts Options) (Page[T], error) {
	if err := opts.Validate(); err != nil {
		return Page[T]{}, err
	}

	data, err := src.Fetch(ctx, opts.Offset(), opts.Limit)
	if err != nil {
		return Page[T]{}, err
	}
	if data == nil {
		data = []T{}
	}
	if len(data) > opts.Limit {
		data = data[:opts.Limit]
	}

	page := Page[T]{
		First: 1,
		Last:  opts.Page,
		Limit: opts.Limit,
		Data:  data,
	}

	if opts.Total {
		total, err := src.Count(ctx)
		if err != nil {
			return Page[T]{}, err
		}
		page.Total = &total
		page.Last = LastPage(total, opts.Limit)
	}

	return page, nil
}

// LastPage is ceil(total/limit); 0 for an empty set.
func LastPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Map converts a page's items while keeping the envelope.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Data))
	for _, it := range p.Data {
		out = append(out, fn(it))
	}
	return Page[U]{
		First: p.First,
		Last:  p.Last,
		Limit: p.Limit,
		Data:  out,
		Total: p.Total,
	}
}
