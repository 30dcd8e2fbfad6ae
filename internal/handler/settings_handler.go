package handler

import (
	"net/http"

	"github.com/balamurugandev/safe-tradex/internal/service"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SettingsHandler 配置HTTP处理器
type SettingsHandler struct {
	logger *zap.Logger

	settingsService *service.SettingsService
}

// NewSettingsHandler 创建配置处理器
func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		logger:          logger,
		settingsService: settingsService,
	}
}

// Get 获取配置
// GET /api/settings
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Save 创建或更新配置
// PUT /api/settings
func (h *SettingsHandler) Save(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.SettingsUpdate
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	settings, err := h.settingsService.Save(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// RegisterRoutes 注册路由
func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	settings := g.Group("/settings")
	settings.GET("", h.Get)
	settings.PUT("", h.Save)
}
