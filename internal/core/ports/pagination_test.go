package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest_Defaults(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 25, 2, 25},
		{1, 1000, 1, MaxLimit},
		{100000000000000000, 100, MaxPage, MaxLimit},
	}
	for _, tc := range cases {
		got := NewPageRequest(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, got.Page)
		assert.Equal(t, tc.wantLimit, got.Limit)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, NewPageRequest(1, 10).Offset())
	assert.Equal(t, 10, NewPageRequest(2, 10).Offset())
	assert.Equal(t, 50, NewPageRequest(6, 10).Offset())

	huge := NewPageRequest(100000000000000000, 100)
	assert.GreaterOrEqual(t, huge.Offset(), 0)
	assert.Equal(t, (MaxPage-1)*MaxLimit, huge.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 25, NewPageRequest(2, 10))

	assert.NotNil(t, p.Items)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
}
