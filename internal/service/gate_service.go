package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/config"
	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/telegram"
	"github.com/balamurugandev/safe-tradex/internal/tradingcal"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Gate statuses, ordered by priority: a locked day wins over an active
// cool-off, which wins over the post-trade pause, which wins over the
// trade-count cap.
const (
	GateOpen       = "open"
	GateLocked     = "locked"
	GateCoolingOff = "cooling_off"
	GatePaused     = "paused"
	GateMaxTrades  = "max_trades"
)

// GateState 入场闸门状态，随仪表盘一起返回
type GateState struct {
	Status           string  `json:"status"`
	Message          string  `json:"message,omitempty"`
	RemainingSeconds int     `json:"remaining_seconds,omitempty"`
	TradesRemaining  int     `json:"trades_remaining"`
	NetPnL           float64 `json:"net_pnl"`
}

// ChecklistInput 入场前自检。高胜率确认是硬性要求；
// FOMO 与报复性交易的自述只追加警示备注，从不拦截。
type ChecklistInput struct {
	HighProbabilitySetup bool `json:"high_probability_setup"`
	FomoAcknowledged     bool `json:"fomo_acknowledged"`
	RevengeAcknowledged  bool `json:"revenge_acknowledged"`
}

// TradeSubmission 提交一条已平仓交易
type TradeSubmission struct {
	TradeName   string         `json:"trade_name" validate:"required,max=100"`
	PnlAmount   float64        `json:"pnl_amount" validate:"required"`
	Comments    string         `json:"comments" validate:"max=500"`
	SetupType   string         `json:"setup_type"`
	MarketState string         `json:"market_state"`
	Checklist   ChecklistInput `json:"checklist"`
}

// GateService 决定当前能否再开新仓。计时器一律从数据库行的
// created_at 推算，不在内存里跑倒计时，重启后状态不丢。
type GateService struct {
	logger *zap.Logger

	tradeService    *TradeService
	settingsService *SettingsService
	riskService     *RiskService
	tg              *telegram.Telegram
	cal             *tradingcal.Calendar

	coolOff time.Duration
	pause   time.Duration
}

func NewGateService(
	logger *zap.Logger,
	conf *config.Config,
	tradeService *TradeService,
	settingsService *SettingsService,
	riskService *RiskService,
	tg *telegram.Telegram,
	cal *tradingcal.Calendar,
) *GateService {
	return &GateService{
		logger:          logger,
		tradeService:    tradeService,
		settingsService: settingsService,
		riskService:     riskService,
		tg:              tg,
		cal:             cal,
		coolOff:         time.Duration(conf.Trading.CoolOffMinutes) * time.Minute,
		pause:           time.Duration(conf.Trading.PauseMinutes) * time.Minute,
	}
}

// Evaluate 计算当前闸门状态。优先级：锁定 > 冷静期 > 暂停 > 次数用尽。
func (s *GateService) Evaluate(ctx context.Context, now time.Time) (*GateState, *DayRisk, error) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	trades, err := s.tradeService.TodayTrades(ctx, now)
	if err != nil {
		return nil, nil, err
	}
	openingEquity, err := s.tradeService.OpeningEquity(ctx, settings.StartingCapital, now)
	if err != nil {
		return nil, nil, err
	}

	risk := s.riskService.EvaluateDay(trades, openingEquity, settings)
	state := s.evaluateGate(trades, &risk, settings, now)
	return state, &risk, nil
}

func (s *GateService) evaluateGate(trades []models.Trade, risk *DayRisk, settings *models.Settings, now time.Time) *GateState {
	state := &GateState{
		Status: GateOpen,
		NetPnL: risk.NetPnL,
	}
	state.TradesRemaining = settings.MaxTradesPerDay - risk.TradeCount
	if state.TradesRemaining < 0 {
		state.TradesRemaining = 0
	}

	if risk.IsLocked {
		state.Status = GateLocked
		if risk.LockReason == LockReasonMaxLoss {
			state.Message = xe.ErrMaxLossLocked.Error()
		} else {
			state.Message = xe.ErrProfitTargetLocked.Error()
		}
		return state
	}

	if remaining := s.coolOffRemaining(trades, now); remaining > 0 {
		state.Status = GateCoolingOff
		state.Message = xe.ErrCoolingOff.Error()
		state.RemainingSeconds = int(remaining.Seconds())
		return state
	}

	if remaining := s.pauseRemaining(trades, now); remaining > 0 {
		state.Status = GatePaused
		state.Message = xe.ErrPostTradePause.Error()
		state.RemainingSeconds = int(remaining.Seconds())
		return state
	}

	if risk.TradeCount >= settings.MaxTradesPerDay {
		state.Status = GateMaxTrades
		state.Message = xe.ErrMaxTradesReached.Error()
		return state
	}

	return state
}

// coolOffRemaining 最近一笔亏损之后的剩余冷静时间
func (s *GateService) coolOffRemaining(trades []models.Trade, now time.Time) time.Duration {
	var lastLoss time.Time
	for _, t := range trades {
		if t.IsCapitalAdjustment() || t.PnlAmount >= 0 {
			continue
		}
		if t.CreatedAt.After(lastLoss) {
			lastLoss = t.CreatedAt
		}
	}
	if lastLoss.IsZero() {
		return 0
	}
	return lastLoss.Add(s.coolOff).Sub(now)
}

// pauseRemaining 最近一笔交易之后的剩余暂停时间
func (s *GateService) pauseRemaining(trades []models.Trade, now time.Time) time.Duration {
	var last time.Time
	for _, t := range trades {
		if t.IsCapitalAdjustment() {
			continue
		}
		if t.CreatedAt.After(last) {
			last = t.CreatedAt
		}
	}
	if last.IsZero() {
		return 0
	}
	return last.Add(s.pause).Sub(now)
}

// Submit 走完整入场流程：校验标签与自检，过闸门，落库，
// 然后用含新行的状态复查，若因此锁定则推送提醒。
func (s *GateService) Submit(ctx context.Context, sub TradeSubmission, now time.Time) (*models.Trade, error) {
	if sub.SetupType == "" {
		return nil, xe.ErrMissingSetupTag
	}
	if sub.MarketState == "" {
		return nil, xe.ErrMissingMarketTag
	}
	if !sub.Checklist.HighProbabilitySetup {
		return nil, xe.ErrInvalidParams
	}

	state, _, err := s.Evaluate(ctx, now)
	if err != nil {
		return nil, err
	}
	switch state.Status {
	case GateLocked:
		if state.Message == xe.ErrProfitTargetLocked.Error() {
			return nil, xe.ErrProfitTargetLocked
		}
		return nil, xe.ErrMaxLossLocked
	case GateCoolingOff:
		return nil, fmt.Errorf("%w (%d seconds remaining)", xe.ErrCoolingOff, state.RemainingSeconds)
	case GatePaused:
		return nil, fmt.Errorf("%w (%d seconds remaining)", xe.ErrPostTradePause, state.RemainingSeconds)
	case GateMaxTrades:
		return nil, xe.ErrMaxTradesReached
	}

	comments := sub.Comments
	var flags []string
	if sub.Checklist.FomoAcknowledged {
		flags = append(flags, "FOMO acknowledged")
	}
	if sub.Checklist.RevengeAcknowledged {
		flags = append(flags, "Revenge trade acknowledged")
	}
	if len(flags) > 0 {
		warning := "[" + strings.Join(flags, "; ") + "]"
		if comments != "" {
			comments = comments + " " + warning
		} else {
			comments = warning
		}
	}

	trade := &models.Trade{
		ID:          ulid.Make().String(),
		TradeName:   sub.TradeName,
		PnlAmount:   sub.PnlAmount,
		Comments:    comments,
		SetupType:   sub.SetupType,
		MarketState: sub.MarketState,
		TradeDate:   s.cal.TradingDate(now),
	}
	if err := s.tradeService.Create(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("trade recorded",
		zap.String("trade_name", trade.TradeName),
		zap.Float64("pnl_amount", trade.PnlAmount),
		zap.String("trade_date", trade.TradeDate))

	// 新行可能恰好触发锁定
	if after, risk, err := s.Evaluate(ctx, now); err == nil && after.Status == GateLocked {
		s.tg.NotifyLock(after.Message, risk.NetPnL, risk.TradeCount)
	}

	return trade, nil
}
