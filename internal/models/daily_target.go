package models

import (
	"time"
)

// DailyTarget 某个交易日的目标百分比覆盖值，按日期唯一
type DailyTarget struct {
	ID               string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	Date             string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`    // YYYY-MM-DD
	TargetPercentage float64   `gorm:"type:decimal(10,2);not null" json:"target_percentage"` // 当日目标百分比
	Notes            string    `gorm:"type:varchar(200)" json:"notes,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (DailyTarget) TableName() string {
	return "daily_targets"
}
