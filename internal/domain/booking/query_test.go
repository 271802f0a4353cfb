package booking

import (
	"context"
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPaging = Paging{DefaultPerPage: 10, MaxPerPage: 100}

func TestParseSort(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, ParseSort(ctx, ""))
	assert.Nil(t, ParseSort(ctx, "{not json"))
	assert.Nil(t, ParseSort(ctx, `[{"id":"password","desc":true}]`))

	got := ParseSort(ctx, `[{"id":"packageCost","desc":true},{"id":"bogus"},{"id":"name"},{"id":"packageCost"}]`)
	assert.Equal(t, []SortOption{{ID: "packageCost", Desc: true}, {ID: "name"}}, got)
}

func TestParseSortSkipsMalformedEntries(t *testing.T) {
	ctx := context.Background()

	got := ParseSort(ctx, `[{"id":"name","desc":"true"},5,{"id":"packageCost","desc":true}]`)
	assert.Equal(t, []SortOption{{ID: "packageCost", Desc: true}}, got)

	assert.Nil(t, ParseSort(ctx, `[null,"name",{"id":["name"]}]`))
	assert.Nil(t, ParseSort(ctx, `{"id":"name"}`))
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "b.created_at DESC, b.id DESC", orderBy(nil))
	assert.Equal(t, "b.package_cost DESC, b.name ASC, b.id DESC",
		orderBy([]SortOption{{ID: "packageCost", Desc: true}, {ID: "name"}}))
}

func TestParseListParamsDefaults(t *testing.T) {
	p := ParseListParams(context.Background(), url.Values{}, testPaging)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 0, p.Offset())
	assert.Nil(t, p.Sort)
	assert.Empty(t, p.Filters.PackageTypes)
	assert.Nil(t, p.Filters.CreatedFrom)
}

func TestParseListParamsBadAndCappedValues(t *testing.T) {
	q := url.Values{"page": {"-3"}, "perPage": {"1000"}}
	p := ParseListParams(context.Background(), q, testPaging)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	q = url.Values{"page": {"3"}, "perPage": {"abc"}}
	p = ParseListParams(context.Background(), q, testPaging)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset())
}

func TestParseListParamsHugePage(t *testing.T) {
	q := url.Values{"page": {"9223372036854775807"}, "perPage": {"20"}}
	p := ParseListParams(context.Background(), q, testPaging)
	assert.Equal(t, math.MaxInt32, p.Page)
	assert.Equal(t, (math.MaxInt32-1)*20, p.Offset())

	huge := ListParams{Page: math.MaxInt, PerPage: math.MaxInt}
	assert.Equal(t, math.MaxInt, huge.Offset())
}

func TestParseListParamsFilters(t *testing.T) {
	q := url.Values{
		"packageType": {"gold, silver,"},
		"name":        {"  smith "},
		"createdAt":   {"2025-06-01"},
	}
	p := ParseListParams(context.Background(), q, testPaging)

	assert.Equal(t, []string{"gold", "silver"}, p.Filters.PackageTypes)
	assert.Equal(t, "smith", p.Filters.Name)
	require.NotNil(t, p.Filters.CreatedFrom)
	require.NotNil(t, p.Filters.CreatedTo)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *p.Filters.CreatedFrom)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), *p.Filters.CreatedTo)
}

func TestParseCreatedAt(t *testing.T) {
	from, to, ok := parseCreatedAt("2025-06-01,2025-06-03")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), *to)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	from, to, ok = parseCreatedAt("1748736000000,")
	require.True(t, ok)
	assert.Equal(t, start, *from)
	assert.Nil(t, to)

	_, to, ok = parseCreatedAt(",2025-06-01")
	require.True(t, ok)
	assert.Equal(t, start.Add(24*time.Hour), *to)

	for _, bad := range []string{"yesterday", ",", "2025-06-03,2025-06-01", "2025-13-01"} {
		_, _, ok := parseCreatedAt(bad)
		assert.False(t, ok, bad)
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%smith%", likePattern("Smith"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
