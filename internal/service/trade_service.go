package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/repo"
	"github.com/balamurugandev/safe-tradex/internal/tradingcal"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TradeService 交易记录的增删改查与统计
type TradeService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TradeRepo

	cal *tradingcal.Calendar
}

func NewTradeService(db *gorm.DB, cal *tradingcal.Calendar, logger *zap.Logger) *TradeService {
	return &TradeService{
		logger:    logger,
		Service:   orz.NewService(db),
		TradeRepo: repo.NewTradeRepo(db),
		cal:       cal,
	}
}

// TradeStats 历史统计，资金调整行不计入
type TradeStats struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	NetPnL        float64 `json:"net_pnl"`
}

// TradeWithCumulative 附带累计盈亏的历史行
type TradeWithCumulative struct {
	models.Trade
	Cumulative float64 `json:"cumulative"`
}

// CalendarSummary 单月日历视图聚合
type CalendarSummary struct {
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	DailyPnL     map[string]float64 `json:"daily_pnl"` // trade_date -> 当日统计盈亏
	MonthlyTotal float64            `json:"monthly_total"`
	TradingDays  int                `json:"trading_days"`
	WinningDays  int                `json:"winning_days"`
	LosingDays   int                `json:"losing_days"`
}

// TodayTrades 获取当前交易日的全部记录，按写入时间升序
func (s *TradeService) TodayTrades(ctx context.Context, now time.Time) ([]models.Trade, error) {
	return s.TradeRepo.FindByTradeDate(ctx, s.cal.TradingDate(now))
}

// OpeningEquity 计算开盘权益：起始资金加上今天之前全部已实现盈亏
// （含资金调整行，资金调整改变的是本金而不是当日表现）
func (s *TradeService) OpeningEquity(ctx context.Context, startingCapital float64, now time.Time) (float64, error) {
	prior, err := s.TradeRepo.FindBefore(ctx, s.cal.TradingDate(now))
	if err != nil {
		return 0, fmt.Errorf("load prior trades: %w", err)
	}
	equity := startingCapital
	for _, t := range prior {
		equity += t.PnlAmount
	}
	return equity, nil
}

// History 历史列表，支持排序与按日期过滤，附累计盈亏
func (s *TradeService) History(ctx context.Context, sortField string, ascending bool, dateFilter string) ([]TradeWithCumulative, error) {
	switch sortField {
	case "trade_date", "pnl_amount":
	default:
		sortField = "trade_date"
	}
	trades, err := s.TradeRepo.FindAllOrdered(ctx, sortField, ascending, dateFilter)
	if err != nil {
		return nil, err
	}

	result := make([]TradeWithCumulative, 0, len(trades))
	cumulative := 0.0
	for _, t := range trades {
		cumulative += t.PnlAmount
		result = append(result, TradeWithCumulative{Trade: t, Cumulative: cumulative})
	}
	return result, nil
}

// Stats 全量统计，排除资金调整行
func (s *TradeService) Stats(ctx context.Context) (*TradeStats, error) {
	trades, err := s.TradeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &TradeStats{}
	for _, t := range trades {
		if t.IsCapitalAdjustment() {
			continue
		}
		stats.TotalTrades++
		stats.NetPnL += t.PnlAmount
		if t.PnlAmount > 0 {
			stats.WinningTrades++
		} else if t.PnlAmount < 0 {
			stats.LosingTrades++
		}
	}
	return stats, nil
}

// MonthCalendar 按自然月聚合每日统计盈亏
func (s *TradeService) MonthCalendar(ctx context.Context, year int, month time.Month) (*CalendarSummary, error) {
	trades, err := s.TradeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-%02d", year, month)
	summary := &CalendarSummary{
		Year:     year,
		Month:    int(month),
		DailyPnL: make(map[string]float64),
	}
	for _, t := range trades {
		if t.IsCapitalAdjustment() {
			continue
		}
		if len(t.TradeDate) < 7 || t.TradeDate[:7] != prefix {
			continue
		}
		summary.DailyPnL[t.TradeDate] += t.PnlAmount
	}
	for _, pnl := range summary.DailyPnL {
		summary.MonthlyTotal += pnl
		summary.TradingDays++
		if pnl > 0 {
			summary.WinningDays++
		} else if pnl < 0 {
			summary.LosingDays++
		}
	}
	return summary, nil
}

// Update 直接编辑一条记录，后写覆盖先写
func (s *TradeService) Update(ctx context.Context, id string, tradeName string, pnlAmount float64, comments, setupType, marketState string) (*models.Trade, error) {
	trade, err := s.TradeRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	trade.TradeName = tradeName
	trade.PnlAmount = pnlAmount
	trade.Comments = comments
	trade.SetupType = setupType
	trade.MarketState = marketState
	if err := s.TradeRepo.Save(ctx, &trade); err != nil {
		return nil, err
	}
	return &trade, nil
}

// Delete 物理删除
func (s *TradeService) Delete(ctx context.Context, id string) error {
	return s.TradeRepo.DeleteById(ctx, id)
}

// RecordCapitalAdjustment 写入 DEPOSIT/WITHDRAWAL 哨兵行。
// 调整行绕过入场闸门但仍计入总资金。
func (s *TradeService) RecordCapitalAdjustment(ctx context.Context, kind string, amount float64, now time.Time) (*models.Trade, error) {
	if kind != models.TradeNameDeposit && kind != models.TradeNameWithdrawal {
		return nil, fmt.Errorf("unknown capital adjustment kind: %s", kind)
	}
	if kind == models.TradeNameWithdrawal && amount > 0 {
		amount = -amount
	}
	trade := &models.Trade{
		ID:        ulid.Make().String(),
		TradeName: kind,
		PnlAmount: amount,
		Comments:  models.CommentCapitalAdjustment,
		TradeDate: s.cal.TradingDate(now),
	}
	if err := s.TradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}
	s.logger.Info("capital adjustment recorded",
		zap.String("kind", kind),
		zap.Float64("amount", amount))
	return trade, nil
}

// CurrentStreak 计算连续盈利交易日数：从最近一个有交易的日期向前数，
// 当日统计盈亏大于零则累计，遇到亏损或持平即止。
func (s *TradeService) CurrentStreak(ctx context.Context) (int, error) {
	trades, err := s.TradeRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return ComputeStreak(trades), nil
}

// ComputeStreak is the pure part of CurrentStreak, over an arbitrary trade set.
func ComputeStreak(trades []models.Trade) int {
	byDate := make(map[string]float64)
	for _, t := range trades {
		if t.IsCapitalAdjustment() {
			continue
		}
		byDate[t.TradeDate] += t.PnlAmount
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	streak := 0
	for _, d := range dates {
		if byDate[d] <= 0 {
			break
		}
		streak++
	}
	return streak
}
