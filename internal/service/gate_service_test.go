package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/config"
	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testGate() *GateService {
	return &GateService{
		logger:      zap.NewNop(),
		riskService: NewRiskService(),
		coolOff:     15 * time.Minute,
		pause:       5 * time.Minute,
	}
}

func TestGateOpenWhenQuiet(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	risk := g.riskService.EvaluateDay(nil, 100000, testSettings())
	state := g.evaluateGate(nil, &risk, testSettings(), now)

	assert.Equal(t, GateOpen, state.Status)
	assert.Equal(t, 10, state.TradesRemaining)
	assert.Zero(t, state.RemainingSeconds)
}

func TestGatePausedAfterWin(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	trades := []models.Trade{
		{PnlAmount: 300, CreatedAt: now.Add(-2 * time.Minute)},
	}
	risk := g.riskService.EvaluateDay(trades, 100000, testSettings())
	state := g.evaluateGate(trades, &risk, testSettings(), now)

	assert.Equal(t, GatePaused, state.Status)
	// about 3 minutes left on the 5 minute pause
	assert.InDelta(t, 180, state.RemainingSeconds, 2)
}

func TestGateCoolingOffAfterLoss(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	trades := []models.Trade{
		{PnlAmount: -300, CreatedAt: now.Add(-10 * time.Minute)},
	}
	risk := g.riskService.EvaluateDay(trades, 100000, testSettings())
	state := g.evaluateGate(trades, &risk, testSettings(), now)

	// pause already expired but the 15 minute cool-off has not
	assert.Equal(t, GateCoolingOff, state.Status)
	assert.InDelta(t, 300, state.RemainingSeconds, 2)
}

func TestGateReopensAfterTimersExpire(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	trades := []models.Trade{
		{PnlAmount: -300, CreatedAt: now.Add(-16 * time.Minute)},
	}
	risk := g.riskService.EvaluateDay(trades, 100000, testSettings())
	state := g.evaluateGate(trades, &risk, testSettings(), now)

	assert.Equal(t, GateOpen, state.Status)
}

func TestGateLockWinsOverTimers(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	trades := []models.Trade{
		{PnlAmount: -2500, CreatedAt: now.Add(-1 * time.Minute)},
	}
	risk := g.riskService.EvaluateDay(trades, 100000, testSettings())
	state := g.evaluateGate(trades, &risk, testSettings(), now)

	assert.Equal(t, GateLocked, state.Status)
	assert.Equal(t, "Maximum loss limit reached. Protect your capital.", state.Message)
}

func TestGateProfitLockMessage(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	trades := []models.Trade{
		{PnlAmount: 6000, CreatedAt: now.Add(-20 * time.Minute)},
	}
	risk := g.riskService.EvaluateDay(trades, 100000, testSettings())
	state := g.evaluateGate(trades, &risk, testSettings(), now)

	assert.Equal(t, GateLocked, state.Status)
	assert.Equal(t, "Profit target achieved! Book your profits.", state.Message)
}

func TestGateMaxTrades(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	settings := testSettings()
	settings.MaxTradesPerDay = 2

	trades := []models.Trade{
		{PnlAmount: 100, CreatedAt: now.Add(-40 * time.Minute)},
		{PnlAmount: 100, CreatedAt: now.Add(-30 * time.Minute)},
	}
	risk := g.riskService.EvaluateDay(trades, 100000, settings)
	state := g.evaluateGate(trades, &risk, settings, now)

	assert.Equal(t, GateMaxTrades, state.Status)
	assert.Zero(t, state.TradesRemaining)
}

func TestGateAdjustmentRowsDoNotStartTimers(t *testing.T) {
	t.Parallel()
	g := testGate()
	now := time.Now()

	trades := []models.Trade{
		{TradeName: models.TradeNameWithdrawal, PnlAmount: -5000, Comments: models.CommentCapitalAdjustment, CreatedAt: now.Add(-1 * time.Minute)},
	}
	risk := g.riskService.EvaluateDay(trades, 100000, testSettings())
	state := g.evaluateGate(trades, &risk, testSettings(), now)

	assert.Equal(t, GateOpen, state.Status)
}

func newSubmitGate(t *testing.T) *GateService {
	t.Helper()
	db := newTestDB(t)
	cal := newTestCalendar(t)
	logger := zap.NewNop()
	conf := &config.Config{}
	conf.Normalize()

	settingsService := NewSettingsService(db, logger)
	capital := 100000.0
	_, err := settingsService.Save(context.Background(), SettingsUpdate{StartingCapital: &capital})
	require.NoError(t, err)

	tradeService := NewTradeService(db, cal, logger)
	return NewGateService(logger, conf, tradeService, settingsService, NewRiskService(), nil, cal)
}

func validSubmission() TradeSubmission {
	return TradeSubmission{
		TradeName:   "NIFTY 22000 CE",
		PnlAmount:   450,
		SetupType:   "breakout",
		MarketState: "trending",
		Checklist:   ChecklistInput{HighProbabilitySetup: true},
	}
}

func TestSubmitRequiresTags(t *testing.T) {
	t.Parallel()
	g := newSubmitGate(t)
	ctx := context.Background()
	now := time.Now()

	sub := validSubmission()
	sub.SetupType = ""
	_, err := g.Submit(ctx, sub, now)
	assert.True(t, errors.Is(err, xe.ErrMissingSetupTag))

	sub = validSubmission()
	sub.MarketState = ""
	_, err = g.Submit(ctx, sub, now)
	assert.True(t, errors.Is(err, xe.ErrMissingMarketTag))

	sub = validSubmission()
	sub.Checklist.HighProbabilitySetup = false
	_, err = g.Submit(ctx, sub, now)
	assert.Error(t, err)
}

func TestSubmitAppendsChecklistWarnings(t *testing.T) {
	t.Parallel()
	g := newSubmitGate(t)
	ctx := context.Background()

	sub := validSubmission()
	sub.Comments = "clean breakout"
	sub.Checklist.FomoAcknowledged = true
	sub.Checklist.RevengeAcknowledged = true

	trade, err := g.Submit(ctx, sub, time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(trade.Comments, "clean breakout"))
	assert.Contains(t, trade.Comments, "FOMO acknowledged")
	assert.Contains(t, trade.Comments, "Revenge trade acknowledged")
}

func TestSubmitBlockedDuringPause(t *testing.T) {
	t.Parallel()
	g := newSubmitGate(t)
	ctx := context.Background()
	now := time.Now()

	_, err := g.Submit(ctx, validSubmission(), now)
	require.NoError(t, err)

	// the row written just now starts the 5 minute pause
	_, err = g.Submit(ctx, validSubmission(), now.Add(time.Minute))
	assert.True(t, errors.Is(err, xe.ErrPostTradePause))
	assert.Regexp(t, `\d+ seconds remaining`, err.Error())
}

func TestSubmitBlockedDuringCoolOff(t *testing.T) {
	t.Parallel()
	g := newSubmitGate(t)
	ctx := context.Background()
	now := time.Now()

	sub := validSubmission()
	sub.PnlAmount = -300
	_, err := g.Submit(ctx, sub, now)
	require.NoError(t, err)

	// pause has lapsed, the 15 minute cool-off has not
	_, err = g.Submit(ctx, validSubmission(), now.Add(6*time.Minute))
	assert.True(t, errors.Is(err, xe.ErrCoolingOff))
	assert.Regexp(t, `\d+ seconds remaining`, err.Error())
}

func TestSubmitBlockedAfterLock(t *testing.T) {
	t.Parallel()
	g := newSubmitGate(t)
	ctx := context.Background()
	now := time.Now()

	sub := validSubmission()
	sub.PnlAmount = -2500 // past the 2% max loss on 100k
	_, err := g.Submit(ctx, sub, now)
	require.NoError(t, err)

	_, err = g.Submit(ctx, validSubmission(), now.Add(20*time.Minute))
	assert.True(t, errors.Is(err, xe.ErrMaxLossLocked))
}
