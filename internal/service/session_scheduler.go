package service

import (
	"context"
	"fmt"
	"time"

	"github.com/balamurugandev/safe-tradex/internal/tradingcal"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionScheduler 会话日切调度器。交易日零点重算连续盈利天数，
// 前一日的锁定与计时器随日期翻转自然失效，无需显式清理。
type SessionScheduler struct {
	logger *zap.Logger

	tradeService    *TradeService
	settingsService *SettingsService
	cal             *tradingcal.Calendar

	isRunning bool
	stopChan  chan struct{}
	cron      *cron.Cron
	cancel    context.CancelFunc
}

// NewSessionScheduler 创建日切调度器
func NewSessionScheduler(
	tradeService *TradeService,
	settingsService *SettingsService,
	cal *tradingcal.Calendar,
	logger *zap.Logger,
) *SessionScheduler {
	return &SessionScheduler{
		logger:          logger,
		tradeService:    tradeService,
		settingsService: settingsService,
		cal:             cal,
		stopChan:        make(chan struct{}),
	}
}

// Start 启动调度器并阻塞到停止
func (t *SessionScheduler) Start(ctx context.Context) error {
	if t.isRunning {
		return fmt.Errorf("session scheduler is already running")
	}
	t.isRunning = true
	ctx, t.cancel = context.WithCancel(ctx)

	// 市场时区的每日零点
	t.cron = cron.New(cron.WithLocation(t.cal.Location()))
	_, err := t.cron.AddFunc("0 0 * * *", func() {
		if err := t.Rollover(context.Background()); err != nil {
			t.logger.Error("session rollover failed", zap.Error(err))
		}
	})
	if err != nil {
		t.isRunning = false
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	t.cron.Start()
	t.logger.Info("session scheduler started",
		zap.String("timezone", t.cal.Location().String()))

	// 启动时立即对齐一次，补上停机期间错过的日切
	go func() {
		if err := t.Rollover(context.Background()); err != nil {
			t.logger.Error("initial rollover failed", zap.Error(err))
		}
	}()

	select {
	case <-t.stopChan:
		t.logger.Info("session scheduler stopped by user")
		return nil
	case <-ctx.Done():
		t.logger.Info("session scheduler stopped by context")
		return ctx.Err()
	}
}

// Stop 停止调度器
func (t *SessionScheduler) Stop() {
	if !t.isRunning {
		return
	}
	t.logger.Info("stopping session scheduler...")

	if t.cron != nil {
		ctx := t.cron.Stop()
		<-ctx.Done() // 等待进行中的任务完成
	}
	if t.cancel != nil {
		t.cancel()
	}

	t.isRunning = false
	close(t.stopChan)
	t.logger.Info("session scheduler stopped")
}

// Rollover 执行一次日切：重算连续盈利天数并回写配置
func (t *SessionScheduler) Rollover(ctx context.Context) error {
	start := time.Now()

	streak, err := t.tradeService.CurrentStreak(ctx)
	if err != nil {
		return fmt.Errorf("compute streak: %w", err)
	}
	if err := t.settingsService.SetCurrentStreak(ctx, streak); err != nil {
		return fmt.Errorf("persist streak: %w", err)
	}

	t.logger.Info("session rollover complete",
		zap.String("trading_date", t.cal.TradingDate(start)),
		zap.Int("current_streak", streak),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
