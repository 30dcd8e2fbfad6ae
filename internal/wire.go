//go:build wireinject
// +build wireinject

package internal

import (
	"net/http"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balamurugandev/safe-tradex/internal/config"
	"github.com/balamurugandev/safe-tradex/internal/handler"
	"github.com/balamurugandev/safe-tradex/internal/service"
	"github.com/balamurugandev/safe-tradex/internal/telegram"
	"github.com/balamurugandev/safe-tradex/internal/tradingcal"
)

const (
	telegramHTTPTimeout = 10 * time.Second
)

var (
	handlerSet = wire.NewSet(
		handler.NewTradeHandler,
		handler.NewProjectionHandler,
		handler.NewSentimentHandler,
		handler.NewSettingsHandler,
		handler.NewDisciplineHandler,
	)

	serviceSet = wire.NewSet(
		provideCalendar,
		provideTelegram,
		service.NewSettingsService,
		service.NewTradeService,
		service.NewRiskService,
		service.NewGateService,
		service.NewProjectionService,
		service.NewSentimentService,
		service.NewDisciplineService,
		service.NewSessionScheduler,
	)
)

// InitializeApp 初始化应用
func InitializeApp(logger *zap.Logger, db *gorm.DB, conf *config.Config) (*AppComponents, error) {
	wire.Build(
		handlerSet,
		serviceSet,
		wire.Struct(new(AppComponents), "*"),
	)
	return nil, nil
}

// provideCalendar provides the market trading calendar
func provideCalendar(conf *config.Config, logger *zap.Logger) *tradingcal.Calendar {
	cal, err := tradingcal.New(conf.Trading.Timezone, conf.Trading.ExtraHolidays, conf.Trading.SpecialTradingDays)
	if err != nil {
		logger.Fatal("failed to init trading calendar", zap.Error(err))
	}
	return cal
}

// provideTelegram provides telegram instance
func provideTelegram(logger *zap.Logger, conf *config.Config) *telegram.Telegram {
	if !conf.Telegram.Enabled {
		return nil
	}

	httpClient := &http.Client{Timeout: telegramHTTPTimeout}

	tg, err := telegram.NewTelegram(logger, telegram.Settings{
		Token:  conf.Telegram.Token,
		ChatId: conf.Telegram.ChatID,
		Client: httpClient,
	})
	if err != nil {
		logger.Error("failed to init telegram", zap.Error(err))
		return nil
	}

	return tg
}
