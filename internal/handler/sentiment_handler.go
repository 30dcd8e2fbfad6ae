package handler

import (
	"net/http"

	"github.com/balamurugandev/safe-tradex/internal/service"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// SentimentHandler 盘前情绪评估HTTP处理器
type SentimentHandler struct {
	logger *zap.Logger

	sentimentService *service.SentimentService
}

// NewSentimentHandler 创建情绪处理器
func NewSentimentHandler(sentimentService *service.SentimentService, logger *zap.Logger) *SentimentHandler {
	return &SentimentHandler{
		logger:           logger,
		sentimentService: sentimentService,
	}
}

// Score 打分并留痕
// POST /api/sentiment/score
func (h *SentimentHandler) Score(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.SentimentInput
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, log, err := h.sentimentService.ScoreAndLog(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"result": result,
		"log_id": log.ID,
	})
}

// Preview 只打分不落库，表单联动用
// POST /api/sentiment/preview
func (h *SentimentHandler) Preview(c echo.Context) error {
	var req service.SentimentInput
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.sentimentService.Score(req))
}

// GetLogs 最近的评估记录
// GET /api/sentiment/logs?limit=20
func (h *SentimentHandler) GetLogs(c echo.Context) error {
	ctx := c.Request().Context()

	logs, err := h.sentimentService.RecentLogs(ctx, cast.ToInt(c.QueryParam("limit")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// RegisterRoutes 注册路由
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	sentiment := g.Group("/sentiment")
	sentiment.POST("/score", h.Score)
	sentiment.POST("/preview", h.Preview)
	sentiment.GET("/logs", h.GetLogs)
}
