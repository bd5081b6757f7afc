package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/newsroom-backend/models"
)

func TestParseArticleFilter(t *testing.T) {
	t.Run("empty query yields an unconstrained filter", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles", nil)
		filter, err := parseArticleFilter(r)
		require.NoError(t, err)
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.CategoryID)
		assert.Nil(t, filter.AuthorID)
		assert.Empty(t, filter.Tags)
		assert.Nil(t, filter.FromDate)
		assert.Nil(t, filter.ToDate)
	})

	t.Run("status is uppercased", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles?status=published", nil)
		filter, err := parseArticleFilter(r)
		require.NoError(t, err)
		require.NotNil(t, filter.Status)
		assert.Equal(t, models.StatusPublished, *filter.Status)
	})

	t.Run("ids are parsed as uuids", func(t *testing.T) {
		categoryID := uuid.New()
		authorID := uuid.New()
		r := httptest.NewRequest("GET", "/articles?categoryId="+categoryID.String()+"&authorId="+authorID.String(), nil)
		filter, err := parseArticleFilter(r)
		require.NoError(t, err)
		assert.Equal(t, categoryID, *filter.CategoryID)
		assert.Equal(t, authorID, *filter.AuthorID)
	})

	t.Run("malformed category id is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles?categoryId=abc", nil)
		_, err := parseArticleFilter(r)
		assert.Error(t, err)
	})

	t.Run("tags are split and trimmed", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles?tags=go,%20news%20,,", nil)
		filter, err := parseArticleFilter(r)
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "news"}, filter.Tags)
	})

	t.Run("date-only and RFC3339 formats are both accepted", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles?from=2026-01-15&to=2026-02-01T12:00:00Z", nil)
		filter, err := parseArticleFilter(r)
		require.NoError(t, err)
		require.NotNil(t, filter.FromDate)
		require.NotNil(t, filter.ToDate)
		assert.True(t, filter.FromDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
		assert.True(t, filter.ToDate.Equal(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles?from=last-tuesday", nil)
		_, err := parseArticleFilter(r)
		assert.Error(t, err)
	})
}

func TestParseSortAndPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/articles?sort=title&order=ASC&limit=25&offset=50", nil)

	sort := parseSort(r)
	assert.Equal(t, models.SortByTitle, sort.Field)
	assert.Equal(t, models.OrderAsc, sort.Order)

	limit, offset, err := parsePage(r)
	require.NoError(t, err)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)

	t.Run("absent parameters yield zero values", func(t *testing.T) {
		empty := httptest.NewRequest("GET", "/articles", nil)
		limit, offset, err := parsePage(empty)
		require.NoError(t, err)
		assert.Zero(t, limit)
		assert.Zero(t, offset)
	})

	t.Run("non-numeric limit is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles?limit=abc", nil)
		_, _, err := parsePage(r)
		assert.Error(t, err)
	})

	t.Run("non-numeric offset is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/articles?limit=10&offset=ten", nil)
		_, _, err := parsePage(r)
		assert.Error(t, err)
	})
}
