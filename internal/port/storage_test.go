package port

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkpost/inkpost/internal/domain"
)

func TestPaginationMath(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10}
	assert.Equal(t, 10, p.Skip())
	assert.Equal(t, int64(3), p.TotalPages(25))
	assert.Equal(t, int64(2), p.TotalPages(20))
	assert.Equal(t, int64(0), p.TotalPages(0))

	norm := Pagination{Page: 0, Limit: -1}.Normalize()
	assert.Equal(t, 1, norm.Page)
	assert.Equal(t, 10, norm.Limit)
	assert.Equal(t, 0, norm.Skip())
}

func TestSortNormalize(t *testing.T) {
	srt := Sort{}.Normalize()
	assert.Equal(t, "createdAt", srt.Field)
	assert.Equal(t, SortDesc, srt.Order)

	srt = Sort{Field: "views", Order: "sideways"}.Normalize()
	assert.Equal(t, "views", srt.Field)
	assert.Equal(t, SortDesc, srt.Order)

	srt = Sort{Field: "title", Order: SortAsc}.Normalize()
	assert.Equal(t, SortAsc, srt.Order)
}

func TestPostFilterSearch(t *testing.T) {
	post := &domain.Post{
		Title:   "Profiling Go services",
		Content: "pprof and flame graphs",
		Tags:    []string{"performance", "go"},
	}

	assert.True(t, PostFilter{}.Matches(post))
	assert.True(t, PostFilter{Search: "PROFILING"}.Matches(post))
	assert.True(t, PostFilter{Search: "flame"}.Matches(post))
	assert.True(t, PostFilter{Search: "performance"}.Matches(post))
	// tag comparison is exact, not substring
	assert.False(t, PostFilter{Search: "perf"}.Matches(post))
	assert.False(t, PostFilter{Search: "rust"}.Matches(post))
}
