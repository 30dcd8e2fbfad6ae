package repo

import (
	"context"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewDailyTargetRepo(db *gorm.DB) *DailyTargetRepo {
	return &DailyTargetRepo{
		Repository: orz.NewRepository[models.DailyTarget, string](db),
	}
}

type DailyTargetRepo struct {
	orz.Repository[models.DailyTarget, string]
}

// FindByDateRange 获取 [start, end] 区间内的目标记录
func (r DailyTargetRepo) FindByDateRange(ctx context.Context, start, end string) ([]models.DailyTarget, error) {
	var targets []models.DailyTarget
	err := r.GetDB(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&targets).Error
	return targets, err
}

// Upsert 按日期唯一键写入或更新目标百分比
func (r DailyTargetRepo) Upsert(ctx context.Context, targets []models.DailyTarget) error {
	if len(targets) == 0 {
		return nil
	}
	return r.GetDB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_percentage", "updated_at"}),
		}).
		Create(&targets).Error
}
