package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func TestBuildSearchQuery(t *testing.T) {
	page := PageRequest{Number: 0, Size: 100}

	t.Run("empty condition is an unfiltered listing", func(t *testing.T) {
		sql, args, err := buildSearchQuery(SearchCondition{}, page)
		require.NoError(t, err)

		assert.NotContains(t, sql, "WHERE")
		assert.Contains(t, sql, "ORDER BY post_date DESC, id DESC")
		assert.Contains(t, sql, "LIMIT 100")
		assert.Contains(t, sql, "OFFSET 0")
		assert.Empty(t, args)
	})

	t.Run("title clause is a case-insensitive substring match", func(t *testing.T) {
		sql, args, err := buildSearchQuery(SearchCondition{Title: "sale"}, page)
		require.NoError(t, err)

		assert.Contains(t, sql, "title ILIKE")
		assert.Equal(t, []any{"%sale%"}, args)
	})

	t.Run("all clauses are combined with AND", func(t *testing.T) {
		cond := SearchCondition{
			Title:         "sale",
			CategoryCode:  "1",
			PostDate:      datePtr(t, "2024-06-01"),
			EffectiveFrom: datePtr(t, "2024-06-01"),
			EffectiveTo:   datePtr(t, "2024-06-30"),
		}
		sql, args, err := buildSearchQuery(cond, page)
		require.NoError(t, err)

		assert.Contains(t, sql, "title ILIKE")
		assert.Contains(t, sql, "category_cd =")
		assert.Contains(t, sql, "post_date =")
		assert.Contains(t, sql, "start_date >=")
		assert.Contains(t, sql, "end_date <=")
		assert.NotContains(t, sql, " OR ")
		assert.Len(t, args, 5)
	})

	t.Run("absent fields add no clause", func(t *testing.T) {
		cond := SearchCondition{CategoryCode: "0"}
		sql, args, err := buildSearchQuery(cond, page)
		require.NoError(t, err)

		assert.Contains(t, sql, "category_cd =")
		assert.NotContains(t, sql, "ILIKE")
		assert.NotContains(t, sql, "post_date =")
		assert.NotContains(t, sql, "start_date >=")
		assert.NotContains(t, sql, "end_date <=")
		assert.Equal(t, []any{"0"}, args)
	})

	t.Run("page number translates to a row offset", func(t *testing.T) {
		sql, _, err := buildSearchQuery(SearchCondition{}, PageRequest{Number: 2, Size: 20})
		require.NoError(t, err)

		assert.Contains(t, sql, "LIMIT 20")
		assert.Contains(t, sql, "OFFSET 40")
	})

	t.Run("sort order does not depend on the filter", func(t *testing.T) {
		filtered, _, err := buildSearchQuery(SearchCondition{Title: "x"}, page)
		require.NoError(t, err)
		unfiltered, _, err := buildSearchQuery(SearchCondition{}, page)
		require.NoError(t, err)

		assert.Contains(t, filtered, "ORDER BY post_date DESC, id DESC")
		assert.Contains(t, unfiltered, "ORDER BY post_date DESC, id DESC")
	})
}

func TestSearchConditionIsEmpty(t *testing.T) {
	assert.True(t, SearchCondition{}.IsEmpty())
	assert.False(t, SearchCondition{Title: "x"}.IsEmpty())
	assert.False(t, SearchCondition{PostDate: datePtr(t, "2024-01-01")}.IsEmpty())
}
