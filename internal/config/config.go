package config

type Config struct {
	Trading     TradingConf     `json:"trading"`
	Telegram    TelegramConf    `json:"telegram"`
	Maintenance MaintenanceConf `json:"maintenance"`
}

type TradingConf struct {
	Timezone           string   `json:"timezone"`             // IANA zone of the trading session, default Asia/Kolkata
	CoolOffMinutes     int      `json:"cool_off_minutes"`     // cool-off after a losing trade, default 15
	PauseMinutes       int      `json:"pause_minutes"`        // pause after any trade, default 5
	ExtraHolidays      []string `json:"extra_holidays"`       // additional market holidays, YYYY-MM-DD
	SpecialTradingDays []string `json:"special_trading_days"` // weekend sessions like Muhurat trading, YYYY-MM-DD
}

type TelegramConf struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  string `json:"chat_id"`
}

type MaintenanceConf struct {
	PruneCutoffDate string `json:"prune_cutoff_date"` // trades dated before this are eligible for pruning
}

// Normalize fills zero values with the defaults the dashboard was tuned for.
func (c *Config) Normalize() {
	if c.Trading.Timezone == "" {
		c.Trading.Timezone = "Asia/Kolkata"
	}
	if c.Trading.CoolOffMinutes <= 0 {
		c.Trading.CoolOffMinutes = 15
	}
	if c.Trading.PauseMinutes <= 0 {
		c.Trading.PauseMinutes = 5
	}
	if c.Maintenance.PruneCutoffDate == "" {
		c.Maintenance.PruneCutoffDate = "2026-01-31"
	}
}
