package service

import (
	"context"
	"testing"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/tradingcal"
	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		models.Trade{}, models.Settings{}, models.DailyTarget{},
		models.SentimentLog{}, models.IncidentReport{},
	))
	return db
}

func newTestCalendar(t *testing.T) *tradingcal.Calendar {
	t.Helper()
	cal, err := tradingcal.New("Asia/Kolkata", nil, nil)
	require.NoError(t, err)
	return cal
}

func newTestTradeService(t *testing.T) (*TradeService, *tradingcal.Calendar) {
	t.Helper()
	cal := newTestCalendar(t)
	return NewTradeService(newTestDB(t), cal, zap.NewNop()), cal
}

func seedTrade(t *testing.T, s *TradeService, date string, pnl float64) {
	t.Helper()
	err := s.TradeRepo.Create(context.Background(), &models.Trade{
		ID:          ulid.Make().String(),
		TradeName:   "NIFTY 22000 CE",
		PnlAmount:   pnl,
		SetupType:   "breakout",
		MarketState: "trending",
		TradeDate:   date,
	})
	require.NoError(t, err)
}

func TestTradeStatsExcludesAdjustments(t *testing.T) {
	t.Parallel()
	s, cal := newTestTradeService(t)
	ctx := context.Background()

	seedTrade(t, s, "2026-03-02", 1000)
	seedTrade(t, s, "2026-03-04", -400)
	seedTrade(t, s, "2026-03-05", 250)

	now := time.Date(2026, 3, 5, 11, 0, 0, 0, cal.Location())
	_, err := s.RecordCapitalAdjustment(ctx, models.TradeNameDeposit, 50000, now)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
	assert.InDelta(t, 850, stats.NetPnL, 1e-9)
}

func TestOpeningEquityIncludesAdjustments(t *testing.T) {
	t.Parallel()
	s, cal := newTestTradeService(t)
	ctx := context.Background()

	seedTrade(t, s, "2026-03-02", 1000)

	depositDay := time.Date(2026, 3, 3, 11, 0, 0, 0, cal.Location())
	_, err := s.RecordCapitalAdjustment(ctx, models.TradeNameDeposit, 50000, depositDay)
	require.NoError(t, err)

	// 出金金额自动取负
	_, err = s.RecordCapitalAdjustment(ctx, models.TradeNameWithdrawal, 10000, depositDay)
	require.NoError(t, err)

	now := time.Date(2026, 3, 5, 9, 30, 0, 0, cal.Location())
	equity, err := s.OpeningEquity(ctx, 100000, now)
	require.NoError(t, err)
	assert.InDelta(t, 100000+1000+50000-10000, equity, 1e-9)

	// same-day rows are not part of the opening equity
	seedTrade(t, s, "2026-03-05", 700)
	equity, err = s.OpeningEquity(ctx, 100000, now)
	require.NoError(t, err)
	assert.InDelta(t, 141000, equity, 1e-9)
}

func TestHistoryCumulative(t *testing.T) {
	t.Parallel()
	s, _ := newTestTradeService(t)
	ctx := context.Background()

	seedTrade(t, s, "2026-03-02", 1000)
	seedTrade(t, s, "2026-03-04", -400)

	rows, err := s.History(ctx, "trade_date", true, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-02", rows[0].TradeDate)
	assert.InDelta(t, 1000, rows[0].Cumulative, 1e-9)
	assert.InDelta(t, 600, rows[1].Cumulative, 1e-9)

	filtered, err := s.History(ctx, "trade_date", true, "2026-03-04")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2026-03-04", filtered[0].TradeDate)
}

func TestMonthCalendar(t *testing.T) {
	t.Parallel()
	s, cal := newTestTradeService(t)
	ctx := context.Background()

	seedTrade(t, s, "2026-03-02", 600)
	seedTrade(t, s, "2026-03-02", 400)
	seedTrade(t, s, "2026-03-04", -300)
	seedTrade(t, s, "2026-04-01", 999) // other month

	now := time.Date(2026, 3, 2, 11, 0, 0, 0, cal.Location())
	_, err := s.RecordCapitalAdjustment(ctx, models.TradeNameDeposit, 50000, now)
	require.NoError(t, err)

	summary, err := s.MonthCalendar(ctx, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TradingDays)
	assert.Equal(t, 1, summary.WinningDays)
	assert.Equal(t, 1, summary.LosingDays)
	assert.InDelta(t, 700, summary.MonthlyTotal, 1e-9)
	assert.InDelta(t, 1000, summary.DailyPnL["2026-03-02"], 1e-9)
}

func TestUpdateAndDelete(t *testing.T) {
	t.Parallel()
	s, _ := newTestTradeService(t)
	ctx := context.Background()

	seedTrade(t, s, "2026-03-02", 100)
	rows, err := s.TradeRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	updated, err := s.Update(ctx, rows[0].ID, "BANKNIFTY 48000 PE", -250, "late entry", "reversal", "choppy")
	require.NoError(t, err)
	assert.Equal(t, "BANKNIFTY 48000 PE", updated.TradeName)
	assert.InDelta(t, -250, updated.PnlAmount, 1e-9)

	require.NoError(t, s.Delete(ctx, rows[0].ID))
	rows, err = s.TradeRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecordCapitalAdjustmentRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	s, cal := newTestTradeService(t)

	now := time.Date(2026, 3, 2, 11, 0, 0, 0, cal.Location())
	_, err := s.RecordCapitalAdjustment(context.Background(), "BONUS", 100, now)
	assert.Error(t, err)
}

func TestComputeStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []models.Trade
		want   int
	}{
		{"empty", nil, 0},
		{
			"two green days",
			[]models.Trade{
				{TradeDate: "2026-03-02", PnlAmount: -50},
				{TradeDate: "2026-03-04", PnlAmount: 100},
				{TradeDate: "2026-03-05", PnlAmount: 30},
			},
			2,
		},
		{
			"latest day red breaks streak",
			[]models.Trade{
				{TradeDate: "2026-03-04", PnlAmount: 100},
				{TradeDate: "2026-03-05", PnlAmount: -30},
			},
			0,
		},
		{
			"same day nets out",
			[]models.Trade{
				{TradeDate: "2026-03-05", PnlAmount: 100},
				{TradeDate: "2026-03-05", PnlAmount: -100},
			},
			0,
		},
		{
			"adjustments ignored",
			[]models.Trade{
				{TradeDate: "2026-03-04", PnlAmount: 100},
				{TradeDate: "2026-03-05", TradeName: models.TradeNameWithdrawal, PnlAmount: -5000, Comments: models.CommentCapitalAdjustment},
			},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.trades))
		})
	}
}
