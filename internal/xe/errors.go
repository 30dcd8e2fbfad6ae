package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams    = orz.NewError(10400, "invalid parameters")
	ErrSettingsNotFound = orz.NewError(10404, "settings not configured yet")

	// Gate rejections. These are first-class states, not failures; the
	// dashboard endpoint carries the remaining seconds for display.
	ErrMaxLossLocked      = orz.NewError(10001, "Maximum loss limit reached. Protect your capital.")
	ErrProfitTargetLocked = orz.NewError(10002, "Profit target achieved! Book your profits.")
	ErrCoolingOff         = orz.NewError(10003, "Cool-off active after a loss. Step away from the screen.")
	ErrPostTradePause     = orz.NewError(10004, "Post-trade pause active. Let the last trade settle.")
	ErrMaxTradesReached   = orz.NewError(10005, "Maximum trades for the day reached. Session closed.")

	ErrMissingSetupTag  = orz.NewError(10006, "setup type is required before logging a trade")
	ErrMissingMarketTag = orz.NewError(10007, "market state is required before logging a trade")
	ErrReportTooShort   = orz.NewError(10008, "incident report must be at least 100 words")
)
