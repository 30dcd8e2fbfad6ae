package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestProjectionService(t *testing.T) (*ProjectionService, *TradeService, *SettingsService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cal := newTestCalendar(t)
	settingsService := NewSettingsService(db, zap.NewNop())
	tradeService := NewTradeService(db, cal, zap.NewNop())
	projectionService := NewProjectionService(db, settingsService, cal, zap.NewNop())
	return projectionService, tradeService, settingsService, db
}

func seedSettings(t *testing.T, s *SettingsService, capital float64) {
	t.Helper()
	_, err := s.Save(context.Background(), SettingsUpdate{StartingCapital: &capital})
	require.NoError(t, err)
}

func findDay(t *testing.T, view *ProjectionView, date string) ProjectionDay {
	t.Helper()
	for _, d := range view.Days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("day %s not in view", date)
	return ProjectionDay{}
}

func TestMonthViewCurrentMonth(t *testing.T) {
	t.Parallel()
	ps, ts, ss, _ := newTestProjectionService(t)
	ctx := context.Background()

	seedSettings(t, ss, 100000)
	seedTrade(t, ts, "2026-03-02", 1000)
	seedTrade(t, ts, "2026-03-04", -500)

	now := time.Date(2026, 3, 10, 11, 0, 0, 0, ps.cal.Location())
	view, err := ps.MonthView(ctx, 2026, time.March, now)
	require.NoError(t, err)

	// Mar 1 is a Sunday and Mar 3 is Holi, first row is Mar 2
	require.NotEmpty(t, view.Days)
	assert.Equal(t, "2026-03-02", view.Days[0].Date)
	for _, d := range view.Days {
		assert.NotEqual(t, "2026-03-03", d.Date)
	}

	first := findDay(t, view, "2026-03-02")
	assert.InDelta(t, 100000, first.CalcStartBalance, 1e-6)
	assert.InDelta(t, 1000, first.ProjectedGain, 1e-6) // default 1%
	require.NotNil(t, first.ActualPnL)
	assert.InDelta(t, 1000, *first.ActualPnL, 1e-6)
	require.NotNil(t, first.ActualEndBalance)
	assert.InDelta(t, 101000, *first.ActualEndBalance, 1e-6)
	require.NotNil(t, first.Variance)
	assert.InDelta(t, 0, *first.Variance, 1e-6)

	// compounding resumes from the actual close
	second := findDay(t, view, "2026-03-04")
	assert.InDelta(t, 101000, second.CalcStartBalance, 1e-6)
	require.NotNil(t, second.ActualEndBalance)
	assert.InDelta(t, 100500, *second.ActualEndBalance, 1e-6)

	// past day without trades stays flat
	idle := findDay(t, view, "2026-03-05")
	assert.InDelta(t, 100500, idle.CalcStartBalance, 1e-6)
	assert.Nil(t, idle.ActualPnL)

	// today's start balance is recomputed from realized pnl
	today := findDay(t, view, "2026-03-10")
	assert.True(t, today.IsToday)
	assert.InDelta(t, 100500, today.CalcStartBalance, 1e-6)

	// future rows pin the displayed start balance to reality
	future := findDay(t, view, "2026-03-11")
	assert.True(t, future.IsFuture)
	assert.InDelta(t, 100500, future.StartBalance, 1e-6)
	assert.InDelta(t, 100500*1.01, future.ProjectedEndBalance, 1e-6)

	next := findDay(t, view, "2026-03-12")
	assert.InDelta(t, 100500*1.01, next.CalcStartBalance, 1e-6)
	assert.InDelta(t, 100500, next.StartBalance, 1e-6)

	assert.InDelta(t, 100500, view.MonthEndReality, 1e-6)
	assert.InDelta(t, 500, view.MonthActualGain, 1e-6)
	assert.InDelta(t, view.Days[len(view.Days)-1].ProjectedEndBalance, view.MonthEndProjected, 1e-6)
}

func TestMonthViewTargetOverride(t *testing.T) {
	t.Parallel()
	ps, _, ss, _ := newTestProjectionService(t)
	ctx := context.Background()

	seedSettings(t, ss, 100000)
	require.NoError(t, ps.SetTarget(ctx, "2026-03-02", 2.5))

	now := time.Date(2026, 3, 2, 11, 0, 0, 0, ps.cal.Location())
	view, err := ps.MonthView(ctx, 2026, time.March, now)
	require.NoError(t, err)

	day := findDay(t, view, "2026-03-02")
	assert.InDelta(t, 2.5, day.TargetPercent, 1e-9)
	assert.InDelta(t, 2500, day.ProjectedGain, 1e-6)

	other := findDay(t, view, "2026-03-04")
	assert.InDelta(t, defaultDailyTargetPct, other.TargetPercent, 1e-9)
}

func TestMonthViewFutureMonthOpening(t *testing.T) {
	t.Parallel()
	ps, ts, ss, _ := newTestProjectionService(t)
	ctx := context.Background()

	seedSettings(t, ss, 100000)
	seedTrade(t, ts, "2026-03-02", 2000)

	// Mar 30 is a Monday; the only gap day, Mar 31, is Mahavir Jayanti,
	// so April opens at today's real balance with no simulated growth.
	now := time.Date(2026, 3, 30, 11, 0, 0, 0, ps.cal.Location())
	view, err := ps.MonthView(ctx, 2026, time.April, now)
	require.NoError(t, err)

	assert.InDelta(t, 102000, view.OpeningBalance, 1e-6)
	first := view.Days[0]
	assert.Equal(t, "2026-04-01", first.Date)
	assert.True(t, first.IsFuture)
	assert.InDelta(t, 102000, first.StartBalance, 1e-6)
	assert.InDelta(t, 102000, first.CalcStartBalance, 1e-6)

	// a simulated gap day compounds the opening balance
	later := time.Date(2026, 3, 27, 11, 0, 0, 0, ps.cal.Location()) // Friday
	view2, err := ps.MonthView(ctx, 2026, time.April, later)
	require.NoError(t, err)
	// gap trading day: Mar 30 only (28/29 weekend, 31 holiday)
	assert.InDelta(t, 102000*1.01, view2.OpeningBalance, 1e-6)
}

func TestBulkSetTargets(t *testing.T) {
	t.Parallel()
	ps, _, ss, _ := newTestProjectionService(t)
	ctx := context.Background()

	seedSettings(t, ss, 100000)

	count, err := ps.BulkSetTargets(ctx, 2026, time.March, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 31, count)

	targets, err := ps.Targets(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Len(t, targets, 31)

	// re-apply overwrites instead of duplicating
	count, err = ps.BulkSetTargets(ctx, 2026, time.March, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 31, count)

	targets, err = ps.Targets(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, targets, 31)
	for _, target := range targets {
		assert.InDelta(t, 1.5, target.TargetPercentage, 1e-9)
	}

	now := time.Date(2026, 3, 2, 11, 0, 0, 0, ps.cal.Location())
	view, err := ps.MonthView(ctx, 2026, time.March, now)
	require.NoError(t, err)
	assert.InDelta(t, 1500, findDay(t, view, "2026-03-02").ProjectedGain, 1e-6)
}
