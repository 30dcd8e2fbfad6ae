package models

import (
	"time"
)

// IncidentReport 违规事件复盘报告，只追加
type IncidentReport struct {
	ID            string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	TriggerReason string    `gorm:"type:varchar(200);not null" json:"trigger_reason"` // 触发原因
	Report        string    `gorm:"type:text;not null" json:"report"`                 // 复盘内容
	WordCount     int       `gorm:"not null" json:"word_count"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (IncidentReport) TableName() string {
	return "incident_reports"
}
