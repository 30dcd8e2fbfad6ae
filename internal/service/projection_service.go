package service

import (
	"context"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/repo"
	"github.com/balamurugandev/safe-tradex/internal/tradingcal"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultDailyTargetPct applies to any trading day without an explicit target.
const defaultDailyTargetPct = 1.0

// ProjectionDay 月视图中的一行，仅交易日有行
type ProjectionDay struct {
	Date     string `json:"date"`
	IsToday  bool   `json:"is_today"`
	IsFuture bool   `json:"is_future"`

	// StartBalance is what the table shows; for future days it is pinned to
	// the latest real balance. CalcStartBalance is what the compounding math
	// actually grew from.
	StartBalance     float64 `json:"start_balance"`
	CalcStartBalance float64 `json:"calc_start_balance"`

	TargetPercent       float64 `json:"target_percent"`
	ProjectedGain       float64 `json:"projected_gain"`
	ProjectedEndBalance float64 `json:"projected_end_balance"`

	ActualPnL        *float64 `json:"actual_pnl"`
	ActualPercent    *float64 `json:"actual_percent"`
	ActualEndBalance *float64 `json:"actual_end_balance"`

	Variance *float64 `json:"variance"` // actual - projected
}

// ProjectionView 单月的预测与实际对照
type ProjectionView struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Days  []ProjectionDay `json:"days"`

	OpeningBalance     float64 `json:"opening_balance"`
	MonthEndProjected  float64 `json:"month_end_projected"`
	MonthEndReality    float64 `json:"month_end_reality"`
	MonthProjectedGain float64 `json:"month_projected_gain"`
	MonthActualGain    float64 `json:"month_actual_gain"`
	YearlyTargetAmount float64 `json:"yearly_target_amount"`
}

// ProjectionService 复利预测表。资金调整行计入余额推演，
// 这里关心的是真实资金曲线而不是胜率。
type ProjectionService struct {
	logger *zap.Logger

	tradeRepo       *repo.TradeRepo
	dailyTargetRepo *repo.DailyTargetRepo
	settingsService *SettingsService
	cal             *tradingcal.Calendar
}

func NewProjectionService(
	db *gorm.DB,
	settingsService *SettingsService,
	cal *tradingcal.Calendar,
	logger *zap.Logger,
) *ProjectionService {
	return &ProjectionService{
		logger:          logger,
		tradeRepo:       repo.NewTradeRepo(db),
		dailyTargetRepo: repo.NewDailyTargetRepo(db),
		settingsService: settingsService,
		cal:             cal,
	}
}

// MonthView 构建某个月的对照表
func (s *ProjectionService) MonthView(ctx context.Context, year int, month time.Month, now time.Time) (*ProjectionView, error) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	trades, err := s.tradeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	viewStart := time.Date(year, month, 1, 0, 0, 0, 0, s.cal.Location())
	viewStartStr := viewStart.Format(tradingcal.DateLayout)
	todayStr := s.cal.TradingDate(now)

	// 未来月份的模拟要用到从今天起的目标
	fetchStart := viewStartStr
	if todayStr < viewStartStr {
		fetchStart = todayStr
	}
	monthDays := s.cal.MonthDays(year, month)
	viewEndStr := monthDays[len(monthDays)-1].Format(tradingcal.DateLayout)

	targets, err := s.dailyTargetRepo.FindByDateRange(ctx, fetchStart, viewEndStr)
	if err != nil {
		return nil, err
	}
	targetByDate := make(map[string]float64, len(targets))
	for _, t := range targets {
		targetByDate[t.Date] = t.TargetPercentage
	}
	targetFor := func(date string) float64 {
		if pct, ok := targetByDate[date]; ok {
			return pct
		}
		return defaultDailyTargetPct
	}

	pnlByDate := make(map[string]float64)
	hasTrades := make(map[string]bool)
	for _, t := range trades {
		pnlByDate[t.TradeDate] += t.PnlAmount
		hasTrades[t.TradeDate] = true
	}
	pnlWhere := func(pred func(date string) bool) float64 {
		sum := 0.0
		for date, pnl := range pnlByDate {
			if pred(date) {
				sum += pnl
			}
		}
		return sum
	}

	// 月初开盘余额：过去/当月按真实盈亏；未来月份从今天的真实余额
	// 出发，对空档中的每个交易日按目标复利推演
	var openingBalance float64
	if viewStartStr > todayStr {
		simulated := settings.StartingCapital + pnlWhere(func(d string) bool { return d <= todayStr })
		for day := s.cal.DayOpen(now).AddDate(0, 0, 1); day.Before(viewStart); day = day.AddDate(0, 0, 1) {
			if !s.cal.IsTradingDay(day) {
				continue
			}
			pct := targetFor(day.Format(tradingcal.DateLayout))
			simulated += simulated * pct / 100
		}
		openingBalance = simulated
	} else {
		openingBalance = settings.StartingCapital + pnlWhere(func(d string) bool { return d < viewStartStr })
	}

	latestActualBalance := settings.StartingCapital + pnlWhere(func(d string) bool { return d <= todayStr })

	view := &ProjectionView{
		Year:           year,
		Month:          int(month),
		OpeningBalance: openingBalance,
	}

	compounding := openingBalance
	for _, day := range monthDays {
		if !s.cal.IsTradingDay(day) {
			continue
		}
		dateStr := day.Format(tradingcal.DateLayout)
		isToday := dateStr == todayStr
		isFuture := dateStr > todayStr

		calcStart := compounding
		// 今天的起点始终以真实已实现盈亏重算，推演轨迹同步回真实值
		if isToday {
			calcStart = settings.StartingCapital + pnlWhere(func(d string) bool { return d < dateStr })
			compounding = calcStart
		}

		targetPct := targetFor(dateStr)
		projGain := calcStart * targetPct / 100
		projEnd := calcStart + projGain

		row := ProjectionDay{
			Date:                dateStr,
			IsToday:             isToday,
			IsFuture:            isFuture,
			StartBalance:        calcStart,
			CalcStartBalance:    calcStart,
			TargetPercent:       targetPct,
			ProjectedGain:       projGain,
			ProjectedEndBalance: projEnd,
		}

		if hasTrades[dateStr] {
			dayPnL := pnlByDate[dateStr]
			actEnd := calcStart + dayPnL
			variance := dayPnL - projGain
			var actPct float64
			if calcStart != 0 {
				actPct = dayPnL / calcStart * 100
			}
			row.ActualPnL = &dayPnL
			row.ActualPercent = &actPct
			row.ActualEndBalance = &actEnd
			row.Variance = &variance
			compounding = actEnd
		} else if isFuture {
			compounding = projEnd
		} else {
			// 过去没有交易的日子余额持平
			compounding = calcStart
		}

		if isFuture {
			row.StartBalance = latestActualBalance
		}

		view.Days = append(view.Days, row)
	}

	if len(view.Days) > 0 {
		view.MonthEndProjected = view.Days[len(view.Days)-1].ProjectedEndBalance
		view.MonthProjectedGain = view.MonthEndProjected - view.Days[0].StartBalance
	}
	view.MonthEndReality = settings.StartingCapital + pnlWhere(func(d string) bool { return d <= viewEndStr })
	view.MonthActualGain = pnlWhere(func(d string) bool { return d >= viewStartStr && d <= viewEndStr })
	view.YearlyTargetAmount = settings.YearlyTargetAmount

	return view, nil
}

// SetTarget 设置单日目标百分比
func (s *ProjectionService) SetTarget(ctx context.Context, date string, pct float64) error {
	if _, err := s.cal.ParseDate(date); err != nil {
		return err
	}
	target := models.DailyTarget{
		ID:               ulid.Make().String(),
		Date:             date,
		TargetPercentage: pct,
	}
	return s.dailyTargetRepo.Upsert(ctx, []models.DailyTarget{target})
}

// BulkSetTargets 把目标百分比写到整个月的每一天，
// 含周末与节假日，推演时自然跳过
func (s *ProjectionService) BulkSetTargets(ctx context.Context, year int, month time.Month, pct float64) (int, error) {
	days := s.cal.MonthDays(year, month)
	targets := make([]models.DailyTarget, 0, len(days))
	for _, day := range days {
		targets = append(targets, models.DailyTarget{
			ID:               ulid.Make().String(),
			Date:             day.Format(tradingcal.DateLayout),
			TargetPercentage: pct,
		})
	}
	if err := s.dailyTargetRepo.Upsert(ctx, targets); err != nil {
		return 0, err
	}
	s.logger.Info("daily targets bulk updated",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Float64("target_pct", pct))
	return len(targets), nil
}

// Targets 读取区间内的目标记录
func (s *ProjectionService) Targets(ctx context.Context, start, end string) ([]models.DailyTarget, error) {
	return s.dailyTargetRepo.FindByDateRange(ctx, start, end)
}
