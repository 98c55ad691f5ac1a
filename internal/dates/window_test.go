package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDashboardWindow(t *testing.T) {
	now := time.Date(2024, 8, 17, 15, 4, 0, 0, time.UTC)
	w := DefaultDashboardWindow(now)
	assert.Equal(t, Window{Start: "2024-03-01", End: "2024-08-17"}, w)

	// Crosses the year boundary.
	w = DefaultDashboardWindow(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2023-09-01", w.Start)
}

func TestCurrentMonthWindow(t *testing.T) {
	w := CurrentMonthWindow(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, Window{Start: "2024-02-01", End: "2024-02-29"}, w)
	w = CurrentMonthWindow(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, Window{Start: "2023-12-01", End: "2023-12-31"}, w)
}

func TestIsValid(t *testing.T) {
	assert.True(t, Window{Start: "2024-01-01", End: "2024-01-01"}.IsValid())
	assert.True(t, Window{Start: "2023-12-31", End: "2024-01-01"}.IsValid())
	assert.False(t, Window{Start: "2024-02-01", End: "2024-01-31"}.IsValid())
}

func TestPreviousPeriodKeepsLength(t *testing.T) {
	prev, err := PreviousPeriod(Window{Start: "2024-03-01", End: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, Window{Start: "2024-01-30", End: "2024-02-29"}, prev)

	inDays, _ := Window{Start: "2024-03-01", End: "2024-03-31"}.Days()
	outDays, _ := prev.Days()
	assert.Equal(t, inDays, outDays)
}

func TestPreviousPeriodInvertedCollapses(t *testing.T) {
	prev, err := PreviousPeriod(Window{Start: "2024-03-10", End: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, Window{Start: "2024-03-09", End: "2024-03-09"}, prev)
}

func TestPreviousPeriodRejectsGarbage(t *testing.T) {
	_, err := PreviousPeriod(Window{Start: "2024-3-1", End: "2024-03-31"})
	assert.Error(t, err)
}
