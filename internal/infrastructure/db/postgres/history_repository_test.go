package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uscl/transaction-tracker/internal/core/ports"
)

func TestBuildHistoryQueries_NoFilter(t *testing.T) {
	q := buildHistoryQueries(ports.HistoryFilter{Page: ports.NewPageRequest(2, 10)})

	assert.NotContains(t, q.data, "WHERE")
	assert.NotContains(t, q.count, "WHERE")
	assert.Contains(t, q.data, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 10}, q.dataArgs)
	assert.Empty(t, q.countArgs)
}

func TestBuildHistoryQueries_FilterSharedByDataAndCount(t *testing.T) {
	q := buildHistoryQueries(ports.HistoryFilter{ClientName: "  acme ", Page: ports.NewPageRequest(1, 10)})

	require.Contains(t, q.data, "ILIKE")
	require.Contains(t, q.count, "ILIKE")

	dataWhere := q.data[strings.Index(q.data, "WHERE"):strings.Index(q.data, "ORDER BY")]
	countWhere := q.count[strings.Index(q.count, "WHERE"):]
	assert.Equal(t, strings.TrimSpace(countWhere), strings.TrimSpace(dataWhere))

	assert.Contains(t, q.data, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"acme", 10, 0}, q.dataArgs)
	assert.Equal(t, []any{"acme"}, q.countArgs)
}

func TestBuildHistoryQueries_FilterIsNeverInterpolated(t *testing.T) {
	hostile := `x' OR 1=1 --`
	q := buildHistoryQueries(ports.HistoryFilter{ClientName: hostile, Page: ports.NewPageRequest(1, 10)})

	assert.NotContains(t, q.data, hostile)
	assert.NotContains(t, q.count, hostile)
	assert.Equal(t, hostile, q.countArgs[0])
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
