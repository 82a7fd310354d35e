package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPreviousWindowExplicitRange(t *testing.T) {
	start := date(2024, 1, 15)
	end := date(2024, 1, 22)

	prevStart, prevEnd := PreviousWindow(&start, &end, time.Now())

	assert.Equal(t, date(2024, 1, 8), prevStart)
	assert.Equal(t, date(2024, 1, 15), prevEnd)
}

func TestPreviousWindowDefault(t *testing.T) {
	now := date(2024, 6, 15)

	prevStart, prevEnd := PreviousWindow(nil, nil, now)

	assert.Equal(t, date(2024, 5, 16), prevStart)
	assert.Equal(t, date(2024, 6, 14), prevEnd)
}

func TestPreviousWindowOneSidedFallsToDefault(t *testing.T) {
	now := date(2024, 6, 15)
	start := date(2024, 6, 1)

	prevStart, prevEnd := PreviousWindow(&start, nil, now)

	assert.Equal(t, date(2024, 5, 16), prevStart)
	assert.Equal(t, date(2024, 6, 14), prevEnd)
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-01-15")
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 15), got)

	got, ok = ParseDate("2024-01-15T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 10, got.Hour())

	_, ok = ParseDate("")
	assert.False(t, ok)

	_, ok = ParseDate("not-a-date")
	assert.False(t, ok)
}

func TestParseRangeRequiresBothBounds(t *testing.T) {
	start, end := ParseRange("2024-01-01", "2024-01-31")
	require.NotNil(t, start)
	require.NotNil(t, end)

	start, end = ParseRange("2024-01-01", "")
	assert.Nil(t, start)
	assert.Nil(t, end)

	start, end = ParseRange("", "2024-01-31")
	assert.Nil(t, start)
	assert.Nil(t, end)
}
