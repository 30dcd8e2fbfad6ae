package handler

import (
	"net/http"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/service"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// TradeHandler 交易日志与入场闸门HTTP处理器
type TradeHandler struct {
	logger *zap.Logger

	tradeService    *service.TradeService
	gateService     *service.GateService
	settingsService *service.SettingsService
}

// NewTradeHandler 创建交易处理器
func NewTradeHandler(
	tradeService *service.TradeService,
	gateService *service.GateService,
	settingsService *service.SettingsService,
	logger *zap.Logger,
) *TradeHandler {
	return &TradeHandler{
		logger:          logger,
		tradeService:    tradeService,
		gateService:     gateService,
		settingsService: settingsService,
	}
}

// GetDashboard 仪表盘：闸门状态、当日风控、当日交易、连续盈利天数
// GET /api/dashboard
func (h *TradeHandler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now()

	gate, risk, err := h.gateService.Evaluate(ctx, now)
	if err != nil {
		return err
	}
	trades, err := h.tradeService.TodayTrades(ctx, now)
	if err != nil {
		return err
	}
	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"gate":           gate,
		"risk":           risk,
		"trades":         trades,
		"current_streak": settings.CurrentStreak,
		"settings": map[string]interface{}{
			"starting_capital":            settings.StartingCapital,
			"max_daily_loss_percent":      settings.MaxDailyLossPercent,
			"daily_profit_target_percent": settings.DailyProfitTargetPercent,
			"max_trades_per_day":          settings.MaxTradesPerDay,
		},
	})
}

// SubmitTrade 提交一条已平仓交易，要走完整闸门流程
// POST /api/trades
func (h *TradeHandler) SubmitTrade(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.TradeSubmission
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	trade, err := h.gateService.Submit(ctx, req, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// GetHistory 历史记录，附累计盈亏
// GET /api/trades?sort=trade_date&order=desc&date=2026-03-02
func (h *TradeHandler) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()

	sortField := c.QueryParam("sort")
	ascending := c.QueryParam("order") == "asc"
	dateFilter := c.QueryParam("date")

	trades, err := h.tradeService.History(ctx, sortField, ascending, dateFilter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"trades": trades,
		"total":  len(trades),
	})
}

type tradeUpdateRequest struct {
	TradeName   string  `json:"trade_name" validate:"required,max=100"`
	PnlAmount   float64 `json:"pnl_amount"`
	Comments    string  `json:"comments" validate:"max=500"`
	SetupType   string  `json:"setup_type" validate:"max=50"`
	MarketState string  `json:"market_state" validate:"max=50"`
}

// UpdateTrade 编辑一条记录
// PUT /api/trades/:id
func (h *TradeHandler) UpdateTrade(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req tradeUpdateRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	trade, err := h.tradeService.Update(ctx, id, req.TradeName, req.PnlAmount, req.Comments, req.SetupType, req.MarketState)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// DeleteTrade 删除一条记录
// DELETE /api/trades/:id
func (h *TradeHandler) DeleteTrade(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.tradeService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

// GetStats 历史统计
// GET /api/trades/stats
func (h *TradeHandler) GetStats(c echo.Context) error {
	stats, err := h.tradeService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// GetCalendar 月度日历聚合
// GET /api/trades/calendar?year=2026&month=3
func (h *TradeHandler) GetCalendar(c echo.Context) error {
	ctx := c.Request().Context()

	now := time.Now()
	year := cast.ToInt(c.QueryParam("year"))
	month := cast.ToInt(c.QueryParam("month"))
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	summary, err := h.tradeService.MonthCalendar(ctx, year, time.Month(month))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

type capitalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Deposit 入金
// POST /api/capital/deposit
func (h *TradeHandler) Deposit(c echo.Context) error {
	return h.recordAdjustment(c, models.TradeNameDeposit)
}

// Withdraw 出金
// POST /api/capital/withdrawal
func (h *TradeHandler) Withdraw(c echo.Context) error {
	return h.recordAdjustment(c, models.TradeNameWithdrawal)
}

func (h *TradeHandler) recordAdjustment(c echo.Context, kind string) error {
	ctx := c.Request().Context()

	var req capitalRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	trade, err := h.tradeService.RecordCapitalAdjustment(ctx, kind, req.Amount, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// RegisterRoutes 注册路由
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)

	trades := g.Group("/trades")
	trades.GET("", h.GetHistory)
	trades.POST("", h.SubmitTrade)
	trades.GET("/stats", h.GetStats)
	trades.GET("/calendar", h.GetCalendar)
	trades.PUT("/:id", h.UpdateTrade)
	trades.DELETE("/:id", h.DeleteTrade)

	capital := g.Group("/capital")
	capital.POST("/deposit", h.Deposit)
	capital.POST("/withdrawal", h.Withdraw)
}
