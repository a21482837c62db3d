package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/baechuer/events-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource serves rows from memory and records what it was asked for.
type sliceSource struct {
	rows []int

	countCalls int
	fetchCalls int
	lastOffset int
	lastLimit  int

	countErr error
	fetchErr error
}

func newSliceSource(n int) *sliceSource {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i + 1
	}
	return &sliceSource{rows: rows}
}

func (s *sliceSource) Count(ctx context.Context) (int, error) {
	s.countCalls++
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.rows), nil
}

func (s *sliceSource) Fetch(ctx context.Context, offset, limit int) ([]int, error) {
	s.fetchCalls++
	s.lastOffset, s.lastLimit = offset, limit
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if offset >= len(s.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.rows) {
		end = len(s.rows)
	}
	return s.rows[offset:end], nil
}

func TestPaginate_TwentyFiveRows(t *testing.T) {
	src := newSliceSource(25)

	page, err := Paginate[int](context.Background(), src, Options{Page: 1, Limit: 10, Total: true})
	require.NoError(t, err)

	assert.Equal(t, 1, page.First)
	assert.Equal(t, 3, page.Last)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Data, 10)
	require.NotNil(t, page.Total)
	assert.Equal(t, 25, *page.Total)
}

func TestPaginate_OffsetAndLimit(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		page      int
		limit     int
		wantFirst int
		wantLen   int
	}{
		{"first_page", 25, 1, 10, 1, 10},
		{"middle_page", 25, 2, 10, 11, 10},
		{"partial_last_page", 25, 3, 10, 21, 5},
		{"past_the_end", 25, 4, 10, 0, 0},
		{"limit_one", 3, 3, 1, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSliceSource(tt.rows)
			page, err := Paginate[int](context.Background(), src, Options{Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)

			assert.Equal(t, (tt.page-1)*tt.limit, src.lastOffset)
			assert.Equal(t, tt.limit, src.lastLimit)
			assert.LessOrEqual(t, len(page.Data), tt.limit)
			assert.Len(t, page.Data, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page.Data[0])
			}
		})
	}
}

func TestPaginate_WithoutTotal_EchoesCurrentPage(t *testing.T) {
	src := newSliceSource(25)

	page, err := Paginate[int](context.Background(), src, Options{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, page.First)
	assert.Equal(t, 2, page.Last)
	assert.Nil(t, page.Total)
	assert.Equal(t, 0, src.countCalls, "count must not run when total is not requested")

	b, err := json.Marshal(page)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "total")
}

func TestPaginate_EmptyWithTotal(t *testing.T) {
	src := newSliceSource(0)

	page, err := Paginate[int](context.Background(), src, Options{Page: 1, Limit: 10, Total: true})
	require.NoError(t, err)

	assert.Equal(t, 0, page.Last)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	require.NotNil(t, page.Total)
	assert.Equal(t, 0, *page.Total)

	b, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"first":1,"last":0,"limit":10,"data":[],"total":0}`, string(b))
}

func TestPaginate_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		key  string
	}{
		{"zero_limit", Options{Page: 1, Limit: 0, Total: true}, "limit"},
		{"negative_limit", Options{Page: 1, Limit: -5}, "limit"},
		{"zero_page", Options{Page: 0, Limit: 10}, "page"},
		{"negative_page", Options{Page: -1, Limit: 10}, "page"},
		{"offset_overflow", Options{Page: int(^uint(0) >> 1), Limit: 10}, "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSliceSource(5)
			_, err := Paginate[int](context.Background(), src, tt.opts)
			require.Error(t, err)

			var ae *domain.AppError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, domain.CodeBadRequest, ae.Code)
			assert.Contains(t, ae.Meta, tt.key)

			assert.Zero(t, src.fetchCalls)
			assert.Zero(t, src.countCalls)
		})
	}
}

func TestPaginate_PropagatesSourceErrors(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		src := newSliceSource(5)
		src.fetchErr = errors.New("db down")
		_, err := Paginate[int](context.Background(), src, Options{Page: 1, Limit: 2, Total: true})
		assert.EqualError(t, err, "db down")
	})

	t.Run("count", func(t *testing.T) {
		src := newSliceSource(5)
		src.countErr = errors.New("count failed")
		_, err := Paginate[int](context.Background(), src, Options{Page: 1, Limit: 2, Total: true})
		assert.EqualError(t, err, "count failed")
	})
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 0, LastPage(0, 10))
	assert.Equal(t, 1, LastPage(1, 10))
	assert.Equal(t, 1, LastPage(10, 10))
	assert.Equal(t, 2, LastPage(11, 10))
	assert.Equal(t, 13, LastPage(25, 2))
	assert.Equal(t, 0, LastPage(5, 0))
}

func TestMap(t *testing.T) {
	total := 3
	in := Page[int]{First: 1, Last: 2, Limit: 2, Data: []int{1, 2}, Total: &total}

	out := Map(in, func(v int) string { return string(rune('a' + v - 1)) })

	assert.Equal(t, []string{"a", "b"}, out.Data)
	assert.Equal(t, in.Last, out.Last)
	assert.Equal(t, in.Total, out.Total)
}
