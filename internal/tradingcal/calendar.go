package tradingcal

import (
	"fmt"
	"time"
)

// DateLayout is the canonical trade-date format used across the store.
const DateLayout = "2006-01-02"

// NSE market holidays for calendar year 2026.
var holidays2026 = []string{
	"2026-01-26", // Republic Day
	"2026-03-03", // Holi
	"2026-03-26", // Shri Ram Navami
	"2026-03-31", // Shri Mahavir Jayanti
	"2026-04-03", // Good Friday
	"2026-04-14", // Dr. Ambedkar Jayanti
	"2026-05-01", // Maharashtra Day
	"2026-05-28", // Bakri Id
	"2026-06-26", // Muharram
	"2026-09-14", // Ganesh Chaturthi
	"2026-10-02", // Gandhi Jayanti
	"2026-10-20", // Dussehra
	"2026-11-10", // Diwali Balipratipada
	"2026-11-24", // Gurunanak Jayanti
	"2026-12-25", // Christmas
}

// Weekend dates the exchange opens anyway.
var specialTradingDays2026 = []string{
	"2026-02-01", // Union Budget (Sunday)
	"2026-11-08", // Muhurat Trading (Sunday)
}

// Calendar resolves trading dates in a fixed market timezone. All date
// comparisons in the app go through it so calculations stay testable with an
// explicit clock instead of wall time.
type Calendar struct {
	loc      *time.Location
	holidays map[string]struct{}
	special  map[string]struct{}
}

func New(timezone string, extraHolidays, extraSpecial []string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	c := &Calendar{
		loc:      loc,
		holidays: make(map[string]struct{}),
		special:  make(map[string]struct{}),
	}
	for _, d := range holidays2026 {
		c.holidays[d] = struct{}{}
	}
	for _, d := range extraHolidays {
		c.holidays[d] = struct{}{}
	}
	for _, d := range specialTradingDays2026 {
		c.special[d] = struct{}{}
	}
	for _, d := range extraSpecial {
		c.special[d] = struct{}{}
	}
	return c, nil
}

// Location returns the market timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// TradingDate resolves the calendar date of `now` in the market timezone.
func (c *Calendar) TradingDate(now time.Time) string {
	return now.In(c.loc).Format(DateLayout)
}

// DayOpen returns market-local midnight for the day containing `now`.
func (c *Calendar) DayOpen(now time.Time) time.Time {
	y, m, d := now.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// IsTradingDay reports whether the given date has a market session.
// Weekends and holidays are closed unless flagged as special trading days.
func (c *Calendar) IsTradingDay(day time.Time) bool {
	day = day.In(c.loc)
	dateStr := day.Format(DateLayout)
	if _, ok := c.special[dateStr]; ok {
		return true
	}
	if _, ok := c.holidays[dateStr]; ok {
		return false
	}
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// MonthDays returns every calendar day of the given month at market-local
// midnight, first to last.
func (c *Calendar) MonthDays(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ParseDate parses a YYYY-MM-DD string as market-local midnight.
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
