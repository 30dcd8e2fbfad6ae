package service

import (
	"math"

	"github.com/balamurugandev/safe-tradex/internal/models"
)

// Cost model for Indian intraday options: brokerage is charged per order on
// both legs, GST applies to brokerage, and statutory charges (STT, exchange
// fees, stamp duty) are approximated as a flat fraction of gross turnover.
const (
	gstRate             = 1.18
	statutoryChargeRate = 0.001
)

// Lock reasons surfaced on the dashboard when the day is closed for entries.
const (
	LockReasonMaxLoss      = "max_loss"
	LockReasonProfitTarget = "profit_target"
)

// DayRisk 当日风控快照
type DayRisk struct {
	GrossPnL              float64 `json:"gross_pnl"`
	NetPnL                float64 `json:"net_pnl"`
	BrokerageCost         float64 `json:"brokerage_cost"`
	TaxEstimate           float64 `json:"tax_estimate"`
	TradeCount            int     `json:"trade_count"`
	OpeningEquity         float64 `json:"opening_equity"`
	CurrentPnlPct         float64 `json:"current_pnl_pct"`
	MaxLossAmount         float64 `json:"max_loss_amount"`
	ProfitTargetAmount    float64 `json:"profit_target_amount"`
	IsMaxLossReached      bool    `json:"is_max_loss_reached"`
	IsProfitTargetReached bool    `json:"is_profit_target_reached"`
	IsLocked              bool    `json:"is_locked"`
	LockReason            string  `json:"lock_reason,omitempty"`
}

// RiskService evaluates the day's P&L against the configured loss and profit
// limits. It is pure: callers pass today's trades and the opening equity.
type RiskService struct{}

func NewRiskService() *RiskService {
	return &RiskService{}
}

// EvaluateDay 依据当日交易与开盘权益计算风控状态。
// 亏损与止盈判断均为闭区间：恰好触线即锁定。
func (s *RiskService) EvaluateDay(trades []models.Trade, openingEquity float64, settings *models.Settings) DayRisk {
	risk := DayRisk{OpeningEquity: openingEquity}

	for _, t := range trades {
		if t.IsCapitalAdjustment() {
			continue
		}
		risk.GrossPnL += t.PnlAmount
		risk.TradeCount++
	}

	// 每笔交易买卖两腿，佣金计 GST
	risk.BrokerageCost = settings.BrokeragePerOrder * float64(risk.TradeCount) * 2 * gstRate
	risk.TaxEstimate = math.Abs(risk.GrossPnL) * statutoryChargeRate
	risk.NetPnL = risk.GrossPnL - risk.BrokerageCost - risk.TaxEstimate

	risk.MaxLossAmount = openingEquity * settings.MaxDailyLossPercent / 100
	risk.ProfitTargetAmount = openingEquity * settings.DailyProfitTargetPercent / 100

	if openingEquity > 0 {
		risk.CurrentPnlPct = risk.GrossPnL / openingEquity * 100
	}

	// 零权益下百分比无意义，但额度触线判断照常生效
	risk.IsMaxLossReached = risk.GrossPnL <= -risk.MaxLossAmount
	risk.IsProfitTargetReached = risk.GrossPnL >= risk.ProfitTargetAmount

	switch {
	case risk.IsMaxLossReached:
		risk.IsLocked = true
		risk.LockReason = LockReasonMaxLoss
	case risk.IsProfitTargetReached:
		risk.IsLocked = true
		risk.LockReason = LockReasonProfitTarget
	}
	return risk
}
