package models

import (
	"time"
)

// Settings 全局唯一的交易纪律配置
type Settings struct {
	ID                       string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	StartingCapital          float64   `gorm:"type:decimal(20,2);not null" json:"starting_capital"`            // 起始资金（₹）
	MaxDailyLossPercent      float64   `gorm:"type:decimal(10,2);not null" json:"max_daily_loss_percent"`      // 单日最大亏损百分比
	DailyProfitTargetPercent float64   `gorm:"type:decimal(10,2);not null" json:"daily_profit_target_percent"` // 单日止盈百分比
	MaxTradesPerDay          int       `gorm:"not null" json:"max_trades_per_day"`                             // 单日最大交易次数
	BrokeragePerOrder        float64   `gorm:"type:decimal(10,2)" json:"brokerage_per_order"`                  // 单边佣金（₹）
	MaxLotSize               int       `json:"max_lot_size"`                                                   // 最大手数
	LotValue                 float64   `gorm:"type:decimal(20,2)" json:"lot_value"`                            // 每手价值（₹）
	CurrentStreak            int       `json:"current_streak"`                                                 // 连续盈利天数
	MonthlyTargetPercent     float64   `gorm:"type:decimal(10,2)" json:"monthly_target_percent"`               // 月度目标百分比
	YearlyTargetPercent      float64   `gorm:"type:decimal(10,2)" json:"yearly_target_percent"`                // 年度目标百分比
	YearlyTargetAmount       float64   `gorm:"type:decimal(20,2)" json:"yearly_target_amount"`                 // 年度目标金额（₹）
	CreatedAt                time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Settings) TableName() string {
	return "settings"
}
