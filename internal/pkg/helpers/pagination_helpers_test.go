package helpers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		name             string
		page, size, rows int
		start, end       int
	}{
		{"first page", 1, 20, 45, 0, 20},
		{"last partial page", 3, 20, 45, 40, 45},
		{"exactly full", 2, 20, 40, 20, 40},
		{"past the end", 4, 20, 45, 45, 45},
		{"empty", 1, 20, 0, 0, 0},
		{"page below one", 0, 20, 45, 0, 20},
		{"default size", 1, 0, 45, 0, DefaultPageSize},
		{"overflowing page", math.MaxInt / 10, 20, 45, 45, 45},
		{"max page", math.MaxInt, MaxPageSize, 45, 45, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateSliceIndices(tt.page, tt.size, tt.rows)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, 45, info.TotalItems)

	info = NewPaginationInfo(45, 7, 20)
	assert.Equal(t, 7, info.CurrentPage, "a page past the end is reported as requested")
	assert.Equal(t, 3, info.TotalPages)

	info = NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, info.TotalPages)
}
