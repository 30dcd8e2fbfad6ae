package models

import (
	"time"

	"gorm.io/datatypes"
)

// SentimentLog 一次市场情绪评估的输入与结论，只追加不回读
type SentimentLog struct {
	ID              string                      `gorm:"primaryKey;type:varchar(26)" json:"id"`
	CprType         string                      `gorm:"type:varchar(10);not null" json:"cpr_type"`    // narrow/wide
	VixRange        string                      `gorm:"type:varchar(20);not null" json:"vix_range"`   // ultra_low/stable/elevated/panic
	OiBuildUp       string                      `gorm:"type:varchar(20);not null" json:"oi_build_up"` // long_buildup/short_buildup/long_unwinding/short_covering
	PcrValue        float64                     `gorm:"type:decimal(10,2);not null" json:"pcr_value"`
	GlobalCues      string                      `gorm:"type:varchar(10);not null" json:"global_cues"` // positive/neutral/negative
	SupportLevel    string                      `gorm:"type:varchar(50)" json:"support_level,omitempty"`
	ResistanceLevel string                      `gorm:"type:varchar(50)" json:"resistance_level,omitempty"`
	FinalVerdict    string                      `gorm:"type:varchar(10);not null" json:"final_verdict"`
	ConvictionScore int                         `gorm:"not null" json:"conviction_score"`
	Warnings        datatypes.JSONSlice[string] `gorm:"type:json" json:"warnings"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (SentimentLog) TableName() string {
	return "sentiment_logs"
}
