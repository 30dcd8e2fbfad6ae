package service

import (
	"context"
	"errors"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/balamurugandev/safe-tradex/internal/repo"
	"github.com/balamurugandev/safe-tradex/internal/xe"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsService 单例配置的读改写服务
type SettingsService struct {
	logger *zap.Logger

	*orz.Service
	*repo.SettingsRepo
}

func NewSettingsService(db *gorm.DB, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		logger:       logger,
		Service:      orz.NewService(db),
		SettingsRepo: repo.NewSettingsRepo(db),
	}
}

// SettingsUpdate carries every editable field. Omitted fields keep their
// stored values; pointer fields distinguish "absent" from zero.
type SettingsUpdate struct {
	StartingCapital          *float64 `json:"starting_capital" validate:"omitempty,gte=0"`
	MaxDailyLossPercent      *float64 `json:"max_daily_loss_percent" validate:"omitempty,gt=0,lte=100"`
	DailyProfitTargetPercent *float64 `json:"daily_profit_target_percent" validate:"omitempty,gt=0,lte=100"`
	MaxTradesPerDay          *int     `json:"max_trades_per_day" validate:"omitempty,gte=1"`
	BrokeragePerOrder        *float64 `json:"brokerage_per_order" validate:"omitempty,gte=0"`
	MaxLotSize               *int     `json:"max_lot_size" validate:"omitempty,gte=0"`
	LotValue                 *float64 `json:"lot_value" validate:"omitempty,gte=0"`
	MonthlyTargetPercent     *float64 `json:"monthly_target_percent" validate:"omitempty,gte=0"`
	YearlyTargetPercent      *float64 `json:"yearly_target_percent" validate:"omitempty,gte=0"`
	YearlyTargetAmount       *float64 `json:"yearly_target_amount" validate:"omitempty,gte=0"`
}

// Get 获取唯一配置；不存在时返回 xe.ErrSettingsNotFound
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.SettingsRepo.FindSingleton(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save 首次写入时创建唯一记录，之后读改写更新，无版本控制
func (s *SettingsService) Save(ctx context.Context, update SettingsUpdate) (*models.Settings, error) {
	existing, err := s.SettingsRepo.FindSingleton(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		existing = defaultSettings()
		existing.ID = ulid.Make().String()
		applyUpdate(&existing, update)
		if err := s.SettingsRepo.Create(ctx, &existing); err != nil {
			return nil, err
		}
		s.logger.Info("settings created", zap.Float64("starting_capital", existing.StartingCapital))
		return &existing, nil
	}

	applyUpdate(&existing, update)
	if err := s.SettingsRepo.Save(ctx, &existing); err != nil {
		return nil, err
	}
	return &existing, nil
}

// SetCurrentStreak 仅更新连续盈利天数
func (s *SettingsService) SetCurrentStreak(ctx context.Context, streak int) error {
	existing, err := s.SettingsRepo.FindSingleton(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.CurrentStreak == streak {
		return nil
	}
	existing.CurrentStreak = streak
	return s.SettingsRepo.Save(ctx, &existing)
}

// Defaults the dashboard assumed when a field was never configured.
func defaultSettings() models.Settings {
	return models.Settings{
		MaxDailyLossPercent:      2,
		DailyProfitTargetPercent: 5,
		MaxTradesPerDay:          10,
		BrokeragePerOrder:        20,
	}
}

func applyUpdate(settings *models.Settings, update SettingsUpdate) {
	if update.StartingCapital != nil {
		settings.StartingCapital = *update.StartingCapital
	}
	if update.MaxDailyLossPercent != nil {
		settings.MaxDailyLossPercent = *update.MaxDailyLossPercent
	}
	if update.DailyProfitTargetPercent != nil {
		settings.DailyProfitTargetPercent = *update.DailyProfitTargetPercent
	}
	if update.MaxTradesPerDay != nil {
		settings.MaxTradesPerDay = *update.MaxTradesPerDay
	}
	if update.BrokeragePerOrder != nil {
		settings.BrokeragePerOrder = *update.BrokeragePerOrder
	}
	if update.MaxLotSize != nil {
		settings.MaxLotSize = *update.MaxLotSize
	}
	if update.LotValue != nil {
		settings.LotValue = *update.LotValue
	}
	if update.MonthlyTargetPercent != nil {
		settings.MonthlyTargetPercent = *update.MonthlyTargetPercent
	}
	if update.YearlyTargetPercent != nil {
		settings.YearlyTargetPercent = *update.YearlyTargetPercent
	}
	if update.YearlyTargetAmount != nil {
		settings.YearlyTargetAmount = *update.YearlyTargetAmount
	}
}
