package handler

import (
	"net/http"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/service"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ProjectionHandler 复利预测表HTTP处理器
type ProjectionHandler struct {
	logger *zap.Logger

	projectionService *service.ProjectionService
}

// NewProjectionHandler 创建预测处理器
func NewProjectionHandler(projectionService *service.ProjectionService, logger *zap.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		logger:            logger,
		projectionService: projectionService,
	}
}

// GetMonthView 某个月的预测与实际对照
// GET /api/projections?year=2026&month=4
func (h *ProjectionHandler) GetMonthView(c echo.Context) error {
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

	view, err := h.projectionService.MonthView(ctx, year, time.Month(month), now)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

type targetRequest struct {
	TargetPercentage float64 `json:"target_percentage" validate:"required"`
}

// SetTarget 设置单日目标百分比
// PUT /api/projections/targets/:date
func (h *ProjectionHandler) SetTarget(c echo.Context) error {
	ctx := c.Request().Context()

	var req targetRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.projectionService.SetTarget(ctx, c.Param("date"), req.TargetPercentage); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

type bulkTargetRequest struct {
	Year             int     `json:"year" validate:"required"`
	Month            int     `json:"month" validate:"required,gte=1,lte=12"`
	TargetPercentage float64 `json:"target_percentage" validate:"required"`
}

// BulkSetTargets 把目标百分比写到整个月
// POST /api/projections/targets/bulk
func (h *ProjectionHandler) BulkSetTargets(c echo.Context) error {
	ctx := c.Request().Context()

	var req bulkTargetRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	count, err := h.projectionService.BulkSetTargets(ctx, req.Year, time.Month(req.Month), req.TargetPercentage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"updated": count})
}

// GetTargets 区间内的目标记录
// GET /api/projections/targets?start=2026-03-01&end=2026-03-31
func (h *ProjectionHandler) GetTargets(c echo.Context) error {
	ctx := c.Request().Context()

	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return xe.ErrInvalidParams
	}

	targets, err := h.projectionService.Targets(ctx, start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, targets)
}

// RegisterRoutes 注册路由
func (h *ProjectionHandler) RegisterRoutes(g *echo.Group) {
	projections := g.Group("/projections")
	projections.GET("", h.GetMonthView)
	projections.GET("/targets", h.GetTargets)
	projections.POST("/targets/bulk", h.BulkSetTargets)
	projections.PUT("/targets/:date", h.SetTarget)
}
