package repo

import (
	"context"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewSentimentLogRepo(db *gorm.DB) *SentimentLogRepo {
	return &SentimentLogRepo{
		Repository: orz.NewRepository[models.SentimentLog, string](db),
	}
}

type SentimentLogRepo struct {
	orz.Repository[models.SentimentLog, string]
}

// FindRecent 获取最近的评估记录
func (r SentimentLogRepo) FindRecent(ctx context.Context, limit int) ([]models.SentimentLog, error) {
	var logs []models.SentimentLog
	err := r.GetDB(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
