package repo

import (
	"context"

	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewTradeRepo(db *gorm.DB) *TradeRepo {
	return &TradeRepo{
		Repository: orz.NewRepository[models.Trade, string](db),
	}
}

type TradeRepo struct {
	orz.Repository[models.Trade, string]
}

// FindByTradeDate 获取指定交易日的全部记录，按写入时间升序
func (r TradeRepo) FindByTradeDate(ctx context.Context, tradeDate string) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.GetDB(ctx).
		Where("trade_date = ?", tradeDate).
		Order("created_at ASC").
		Find(&trades).Error
	return trades, err
}

// FindBefore 获取指定日期之前（不含）的全部记录
func (r TradeRepo) FindBefore(ctx context.Context, tradeDate string) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.GetDB(ctx).
		Where("trade_date < ?", tradeDate).
		Find(&trades).Error
	return trades, err
}

// FindAllOrdered 按指定字段排序获取全部记录，可选按日期过滤
func (r TradeRepo) FindAllOrdered(ctx context.Context, sortField string, ascending bool, dateFilter string) ([]models.Trade, error) {
	order := sortField + " DESC"
	if ascending {
		order = sortField + " ASC"
	}
	db := r.GetDB(ctx).Order(order)
	if dateFilter != "" {
		db = db.Where("trade_date = ?", dateFilter)
	}
	var trades []models.Trade
	err := db.Find(&trades).Error
	return trades, err
}

// DeleteBefore 物理删除指定日期之前的记录，返回删除条数
func (r TradeRepo) DeleteBefore(ctx context.Context, cutoffDate string) (int64, error) {
	result := r.GetDB(ctx).
		Where("trade_date < ?", cutoffDate).
		Delete(&models.Trade{})
	return result.RowsAffected, result.Error
}
