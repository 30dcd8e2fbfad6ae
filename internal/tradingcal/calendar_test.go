package tradingcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIST(t *testing.T) *Calendar {
	t.Helper()
	cal, err := New("Asia/Kolkata", nil, nil)
	require.NoError(t, err)
	return cal
}

func TestIsTradingDay(t *testing.T) {
	t.Parallel()
	cal := newIST(t)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"regular weekday", "2026-03-02", true},
		{"saturday", "2026-03-07", false},
		{"sunday", "2026-03-08", false},
		{"republic day holiday", "2026-01-26", false},
		{"holi holiday", "2026-03-03", false},
		{"budget day sunday session", "2026-02-01", true},
		{"muhurat trading sunday", "2026-11-08", true},
		{"christmas", "2026-12-25", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := cal.ParseDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cal.IsTradingDay(day))
		})
	}
}

func TestExtraHolidaysAndSpecialDays(t *testing.T) {
	t.Parallel()
	cal, err := New("Asia/Kolkata", []string{"2026-03-02"}, []string{"2026-03-07"})
	require.NoError(t, err)

	monday, _ := cal.ParseDate("2026-03-02")
	saturday, _ := cal.ParseDate("2026-03-07")
	assert.False(t, cal.IsTradingDay(monday))
	assert.True(t, cal.IsTradingDay(saturday))
}

func TestTradingDateCrossesTimezone(t *testing.T) {
	t.Parallel()
	cal := newIST(t)

	// 20:30 UTC on Mar 2 is already Mar 3 in IST
	utc := time.Date(2026, 3, 2, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-03", cal.TradingDate(utc))

	// midday IST stays the same date
	ist := time.Date(2026, 3, 2, 12, 0, 0, 0, cal.Location())
	assert.Equal(t, "2026-03-02", cal.TradingDate(ist))
}

func TestMonthDays(t *testing.T) {
	t.Parallel()
	cal := newIST(t)

	days := cal.MonthDays(2026, time.February)
	require.Len(t, days, 28)
	assert.Equal(t, "2026-02-01", days[0].Format(DateLayout))
	assert.Equal(t, "2026-02-28", days[27].Format(DateLayout))
}

func TestDayOpen(t *testing.T) {
	t.Parallel()
	cal := newIST(t)

	now := time.Date(2026, 3, 2, 15, 45, 12, 0, cal.Location())
	open := cal.DayOpen(now)
	assert.Equal(t, "2026-03-02", open.Format(DateLayout))
	assert.Equal(t, 0, open.Hour())
	assert.Equal(t, 0, open.Minute())
}

func TestParseDateRejectsGarbage(t *testing.T) {
	t.Parallel()
	cal := newIST(t)

	_, err := cal.ParseDate("02-03-2026")
	assert.Error(t, err)
}
