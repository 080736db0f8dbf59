package http

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/port"
)

func TestParseListPostsQuery(t *testing.T) {
	t.Run("defaults to empty filter", func(t *testing.T) {
		req := parseListPostsQuery(url.Values{})
		assert.Empty(t, req.Filter.Search)
		assert.Nil(t, req.Filter.Tags)
		assert.Nil(t, req.Filter.IsFeatured)
		assert.Empty(t, req.Filter.Status)
		assert.Empty(t, req.Filter.AuthorID)

		page := req.Page.Normalize()
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		srt := req.Sort.Normalize()
		assert.Equal(t, "createdAt", srt.Field)
		assert.Equal(t, port.SortDesc, srt.Order)
	})

	t.Run("tags split on comma", func(t *testing.T) {
		q, err := url.ParseQuery("tags=go,testing,web")
		require.NoError(t, err)
		req := parseListPostsQuery(q)
		assert.Equal(t, []string{"go", "testing", "web"}, req.Filter.Tags)
	})

	t.Run("isFeatured tri-state", func(t *testing.T) {
		req := parseListPostsQuery(url.Values{"isFeatured": {"true"}})
		require.NotNil(t, req.Filter.IsFeatured)
		assert.True(t, *req.Filter.IsFeatured)

		req = parseListPostsQuery(url.Values{"isFeatured": {"false"}})
		require.NotNil(t, req.Filter.IsFeatured)
		assert.False(t, *req.Filter.IsFeatured)

		req = parseListPostsQuery(url.Values{"isFeatured": {"banana"}})
		assert.Nil(t, req.Filter.IsFeatured)
	})

	t.Run("pagination and sorting", func(t *testing.T) {
		q, err := url.ParseQuery("page=3&limit=5&sortBy=views&sortOrder=asc")
		require.NoError(t, err)
		req := parseListPostsQuery(q)
		assert.Equal(t, 3, req.Page.Page)
		assert.Equal(t, 5, req.Page.Limit)
		assert.Equal(t, "views", req.Sort.Field)
		assert.Equal(t, port.SortAsc, req.Sort.Order)
	})

	t.Run("garbage page falls back via normalize", func(t *testing.T) {
		req := parseListPostsQuery(url.Values{"page": {"x"}, "limit": {"-4"}})
		page := req.Page.Normalize()
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
	})
}
