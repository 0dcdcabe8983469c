package forecaster

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/stockcast/internal/domain"
)

func windowOf(t *testing.T, lastDate string, prices ...string) []domain.Row {
	t.Helper()
	last, err := domain.ParseDate(lastDate)
	require.NoError(t, err)

	rows := make([]domain.Row, len(prices))
	for i, p := range prices {
		date := last.AddDate(0, 0, i-len(prices)+1)
		rows[i] = domain.NewRow("TSLA", date, decimal.RequireFromString(p))
	}
	return rows
}

func priceStrings(rows []domain.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.PriceString()
	}
	return out
}

func TestForecaster_Extend_Prices(t *testing.T) {
	tests := []struct {
		name     string
		prices   []string
		expected []string
	}{
		{
			name:     "second max equals last",
			prices:   []string{"10.00", "15.00", "12.00"},
			expected: []string{"12.00", "12.00", "12.00"},
		},
		{
			name:     "spike in the middle",
			prices:   []string{"5.00", "20.00", "8.00"},
			expected: []string{"8.00", "8.00", "8.00"},
		},
		{
			// p1=20, delta=(14-20)/2=-3, p2=23, delta=(20-23)/4=-0.75, p3=23.75
			name:     "last below second max",
			prices:   []string{"10", "30", "20", "14"},
			expected: []string{"20.00", "23.00", "23.75"},
		},
		{
			// p1=20, delta=(5-20)/2=-7.5, p2=27.5, delta=(20-27.5)/4=-1.875, p3=29.375
			name:     "equal maxima fill both slots",
			prices:   []string{"20.00", "20.00", "5.00"},
			expected: []string{"20.00", "27.50", "29.38"},
		},
		{
			// p1=10, delta=(40-10)/2=15, p2=-5, delta=(10+5)/4=3.75, p3=-8.75
			name:     "last is the maximum",
			prices:   []string{"10", "5", "40"},
			expected: []string{"10.00", "-5.00", "-8.75"},
		},
		{
			name:     "integer input gains two places",
			prices:   []string{"12", "12", "12"},
			expected: []string{"12.00", "12.00", "12.00"},
		},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := windowOf(t, "10-03-2023", tt.prices...)

			extended, err := f.Extend(window)
			require.NoError(t, err)
			require.Len(t, extended, len(window)+Horizon)
			assert.Equal(t, tt.expected, priceStrings(extended[len(window):]))
		})
	}
}

func TestForecaster_Extend_ExactArithmetic(t *testing.T) {
	extended, err := New().Extend(windowOf(t, "10-03-2023", "20", "20", "5"))
	require.NoError(t, err)

	assert.True(t, extended[3].Price.Equal(decimal.NewFromInt(20)))
	assert.True(t, extended[4].Price.Equal(decimal.RequireFromString("27.5")))
	assert.True(t, extended[5].Price.Equal(decimal.RequireFromString("29.375")))
}

func TestForecaster_Extend_SingleRowUsesZeroSecondMax(t *testing.T) {
	// p1=0, delta=(7-0)/2=3.5, p2=-3.5, delta=(0+3.5)/4=0.875, p3=-4.375
	extended, err := New().Extend(windowOf(t, "01-06-2023", "7"))
	require.NoError(t, err)
	require.Len(t, extended, 4)

	assert.True(t, extended[1].Price.IsZero())
	assert.True(t, extended[2].Price.Equal(decimal.RequireFromString("-3.5")))
	assert.True(t, extended[3].Price.Equal(decimal.RequireFromString("-4.375")))
}

func TestForecaster_Extend_DatesCrossMonthBoundary(t *testing.T) {
	extended, err := New().Extend(windowOf(t, "30-01-2023", "1", "2", "3"))
	require.NoError(t, err)

	var dates []string
	for _, r := range extended[3:] {
		dates = append(dates, r.DateString())
	}
	assert.Equal(t, []string{"31-01-2023", "01-02-2023", "02-02-2023"}, dates)
}

func TestForecaster_Extend_DatesFollowLastRowByPosition(t *testing.T) {
	// the last row is not the latest date; synthetic dates still follow it
	rows := []domain.Row{
		domain.NewRow("A", time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(1)),
		domain.NewRow("B", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(2)),
	}

	extended, err := New().Extend(rows)
	require.NoError(t, err)

	assert.Equal(t, "02-05-2023", extended[2].DateString())
	for _, r := range extended[2:] {
		assert.Equal(t, "B", r.Name, "synthetic rows take the name of the last real row")
	}
}

func TestForecaster_Extend_EmptyWindow(t *testing.T) {
	extended, err := New().Extend(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyWindow)
	assert.Nil(t, extended)

	_, err = New().Extend([]domain.Row{})
	assert.ErrorIs(t, err, domain.ErrEmptyWindow)
}

func TestForecaster_Extend_PreservesWindow(t *testing.T) {
	window := windowOf(t, "15-08-2022", "3.10", "4.25", "3.90", "4.00")
	original := make([]domain.Row, len(window))
	copy(original, window)

	extended, err := New().Extend(window)
	require.NoError(t, err)

	assert.Equal(t, original, extended[:len(window)])
	assert.Equal(t, original, window)
}

func TestTopTwo_StrictComparisons(t *testing.T) {
	tests := []struct {
		name   string
		prices []string
		first  string
		second string
	}{
		{name: "ascending", prices: []string{"1", "2", "3"}, first: "3", second: "2"},
		{name: "descending", prices: []string{"3", "2", "1"}, first: "3", second: "2"},
		{name: "duplicate maximum", prices: []string{"20", "20", "5"}, first: "20", second: "20"},
		{name: "third equal value ignored", prices: []string{"20", "20", "20"}, first: "20", second: "20"},
		{name: "single", prices: []string{"9"}, first: "9", second: "0"},
		{name: "zeros never move slots", prices: []string{"0", "0"}, first: "0", second: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := scanTopTwo(windowOf(t, "01-01-2024", tt.prices...))
			assert.True(t, top.first.Equal(decimal.RequireFromString(tt.first)), "first: %s", top.first)
			assert.True(t, top.second.Equal(decimal.RequireFromString(tt.second)), "second: %s", top.second)
		})
	}
}
