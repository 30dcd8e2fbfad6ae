package handler

import (
	"net/http"

	"github.com/balamurugandev/safe-tradex/internal/service"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DisciplineHandler 恐慌按钮与违规复盘HTTP处理器
type DisciplineHandler struct {
	logger *zap.Logger

	disciplineService *service.DisciplineService
}

// NewDisciplineHandler 创建纪律处理器
func NewDisciplineHandler(disciplineService *service.DisciplineService, logger *zap.Logger) *DisciplineHandler {
	return &DisciplineHandler{
		logger:            logger,
		disciplineService: disciplineService,
	}
}

// GetQuote 随机纪律名言
// GET /api/discipline/quote
func (h *DisciplineHandler) GetQuote(c echo.Context) error {
	return c.JSON(http.StatusOK, h.disciplineService.RandomQuote())
}

type panicRequest struct {
	Reason string `json:"reason" validate:"max=200"`
}

// Panic 恐慌按钮
// POST /api/discipline/panic
func (h *DisciplineHandler) Panic(c echo.Context) error {
	var req panicRequest
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.disciplineService.Panic(req.Reason))
}

// ReportIncident 提交违规复盘报告
// POST /api/discipline/incidents
func (h *DisciplineHandler) ReportIncident(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.IncidentSubmission
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.disciplineService.ReportIncident(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// GetIncidents 历史复盘列表
// GET /api/discipline/incidents
func (h *DisciplineHandler) GetIncidents(c echo.Context) error {
	reports, err := h.disciplineService.Incidents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// RegisterRoutes 注册路由
func (h *DisciplineHandler) RegisterRoutes(g *echo.Group) {
	discipline := g.Group("/discipline")
	discipline.GET("/quote", h.GetQuote)
	discipline.POST("/panic", h.Panic)
	discipline.GET("/incidents", h.GetIncidents)
	discipline.POST("/incidents", h.ReportIncident)
}
