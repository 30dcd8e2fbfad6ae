package repo

import (
	"context"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{
		Repository: orz.NewRepository[models.Settings, string](db),
	}
}

type SettingsRepo struct {
	orz.Repository[models.Settings, string]
}

// FindSingleton 获取唯一的配置记录
func (r SettingsRepo) FindSingleton(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := r.GetDB(ctx).
		Order("created_at ASC").
		First(&settings).Error
	return settings, err
}
