package internal

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/balamurugandev/safe-tradex/internal/config"
	"github.com/balamurugandev/safe-tradex/internal/handler"
	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/service"
	"github.com/balamurugandev/safe-tradex/internal/telegram"
	"github.com/balamurugandev/safe-tradex/pkg/nostd"
	"github.com/balamurugandev/safe-tradex/web"
	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func Run(configPath string) error {
	app := NewSafeTradexApp()

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	return framework.Run()
}

func NewSafeTradexApp() orz.Application {
	return &SafeTradexApp{}
}

var _ orz.Application = (*SafeTradexApp)(nil)

type AppComponents struct {
	TradeHandler      *handler.TradeHandler
	ProjectionHandler *handler.ProjectionHandler
	SentimentHandler  *handler.SentimentHandler
	SettingsHandler   *handler.SettingsHandler
	DisciplineHandler *handler.DisciplineHandler

	SessionScheduler *service.SessionScheduler

	tg *telegram.Telegram
}

type SafeTradexApp struct {
	components *AppComponents
	conf       *config.Config
}

// GetComponents 获取应用组件
func (r *SafeTradexApp) GetComponents() *AppComponents {
	return r.components
}

func (r *SafeTradexApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}
	conf.Normalize()

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.components = components
	r.conf = &conf

	if err := db.AutoMigrate(
		models.Trade{}, models.Settings{}, models.DailyTarget{},
		models.SentimentLog{}, models.IncidentReport{},
	); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	if err := r.Init(logger); err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}

	e.HidePort = true
	e.HideBanner = true

	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      middleware.DefaultSkipper,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			sugar := logger.Sugar()
			sugar.Error(fmt.Sprintf("[PANIC RECOVER] %v %s\n", err, stack))
			return err
		},
	}))
	e.Use(WithErrorHandler(logger))
	customValidator := nostd.CustomValidator{Validator: validator.New()}
	if err := customValidator.TransInit(); err != nil {
		logger.Sugar().Fatal("failed to init custom validator", zap.Error(err))
	}
	e.Validator = &customValidator

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().RequestURI
			if strings.HasPrefix(path, "/api") {
				return true
			}
			return false
		},
		Root:       "",
		Index:      "index.html",
		HTML5:      true,
		Browse:     false,
		IgnoreBase: false,
		Filesystem: http.FS(web.Assets()),
	}))

	api := e.Group("/api")
	{
		r.components.TradeHandler.RegisterRoutes(api)
		r.components.ProjectionHandler.RegisterRoutes(api)
		r.components.SentimentHandler.RegisterRoutes(api)
		r.components.SettingsHandler.RegisterRoutes(api)
		r.components.DisciplineHandler.RegisterRoutes(api)
	}

	return nil
}

func (r *SafeTradexApp) Init(logger *zap.Logger) error {
	logger.Info("=================================================")
	logger.Info("Safe TradeX Discipline Dashboard Starting...")
	logger.Info("=================================================")

	components := r.GetComponents()
	if components == nil {
		return fmt.Errorf("components not initialized")
	}
	if components.SessionScheduler == nil {
		return fmt.Errorf("session scheduler not available")
	}

	go func() {
		if err := components.SessionScheduler.Start(context.Background()); err != nil {
			logger.Error("session scheduler error", zap.Error(err))
		}
	}()
	return nil
}
