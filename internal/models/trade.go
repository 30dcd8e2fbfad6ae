package models

import (
	"time"
)

// Sentinel values marking a row as a capital adjustment rather than a trade.
const (
	TradeNameDeposit         = "DEPOSIT"
	TradeNameWithdrawal      = "WITHDRAWAL"
	CommentCapitalAdjustment = "CAPITAL_ADJUSTMENT"
)

// Trade 一条已平仓的交易记录（或资金调整）
type Trade struct {
	ID          string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	TradeName   string    `gorm:"type:varchar(100);not null" json:"trade_name"`      // 标的，如 NIFTY 22000 CE
	PnlAmount   float64   `gorm:"type:decimal(20,2);not null" json:"pnl_amount"`     // 盈亏金额（₹）
	Comments    string    `gorm:"type:varchar(500)" json:"comments,omitempty"`       // 备注
	SetupType   string    `gorm:"type:varchar(50)" json:"setup_type,omitempty"`      // 交易设置标签
	MarketState string    `gorm:"type:varchar(50)" json:"market_state,omitempty"`    // 市场状态标签
	TradeDate   string    `gorm:"type:varchar(10);not null;index" json:"trade_date"` // 交易日，YYYY-MM-DD
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Trade) TableName() string {
	return "daily_trades"
}

// IsCapitalAdjustment reports whether the row adjusts capital instead of
// recording a position outcome. Adjustment rows count toward total capital
// but never toward win/loss statistics.
func (t Trade) IsCapitalAdjustment() bool {
	return t.Comments == CommentCapitalAdjustment ||
		t.TradeName == TradeNameDeposit ||
		t.TradeName == TradeNameWithdrawal
}
