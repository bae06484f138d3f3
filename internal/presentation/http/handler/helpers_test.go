package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdro61/shop-pilot-sub001/pkg/daterange"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseDateQueryAnchorsInBusinessZone(t *testing.T) {
	c := queryContext(t, "from=2024-03-15")

	got := parseDateQuery(c, "from")

	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, daterange.Zone(), got.Location())
}

// A date query bound must mean that calendar day in the shop's zone. Parsed
// as UTC midnight it lands the previous evening in America/New_York, and the
// resolved range would drop the requested end day entirely.
func TestParseDateQueryRangeKeepsRequestedDays(t *testing.T) {
	c := queryContext(t, "from=2024-03-15&to=2024-03-20")

	from := parseDateQuery(c, "from")
	to := parseDateQuery(c, "to")
	require.NotNil(t, from)
	require.NotNil(t, to)

	r := daterange.Resolve(daterange.PresetCustom, from, to, daterange.Today())

	wantFrom := time.Date(2024, time.March, 15, 0, 0, 0, 0, daterange.Zone())
	wantTo := time.Date(2024, time.March, 20, 0, 0, 0, 0, daterange.Zone())
	assert.True(t, r.From.Equal(wantFrom), "From = %v, want %v", r.From, wantFrom)
	assert.True(t, r.To.Equal(wantTo), "To = %v, want %v", r.To, wantTo)
}

func TestParseDateQueryRejectsMalformedValue(t *testing.T) {
	c := queryContext(t, "from=15-03-2024")

	assert.Nil(t, parseDateQuery(c, "from"))
}

func TestParseDateQueryMissingValueIsNil(t *testing.T) {
	c := queryContext(t, "")

	assert.Nil(t, parseDateQuery(c, "from"))
}
