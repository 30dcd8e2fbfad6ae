package telegram

import (
	"net/http"
	"time"

	"github.com/spf13/cast"
	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Settings struct {
	Token  string
	ChatId string
	Client *http.Client
}

type Telegram struct {
	logger   *zap.Logger
	settings Settings
	client   *tele.Bot
}

func NewTelegram(logger *zap.Logger, settings Settings) (*Telegram, error) {

	poller := &tele.LongPoller{Timeout: 10 * time.Second}

	client, err := tele.NewBot(tele.Settings{
		ParseMode: tele.ModeMarkdown,
		Token:     settings.Token,
		Poller:    poller,
		Client:    settings.Client,
	})
	if err != nil {
		return nil, err
	}

	client.Use(middleware.AutoRespond())

	err = client.SetCommands([]tele.Command{
		{Text: "/start", Description: "启动机器人"},
		{Text: "/help", Description: "获取帮助信息"},
	})
	if err != nil {
		return nil, err
	}

	return &Telegram{
		logger:   logger,
		settings: settings,
		client:   client,
	}, nil
}

func (r *Telegram) Start() {
	go r.client.Start()
}

func (r *Telegram) Notify(msg string) error {
	chatId := cast.ToInt(r.settings.ChatId)
	_, err := r.client.Send(tele.ChatID(chatId), msg, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
	return err
}

var (
	lockTemplate = fasttemplate.New(
		"🔒 *Trading Locked*\n{{message}}\nNet P&L: ₹{{net_pnl}}\nTrades today: {{trade_count}}",
		"{{", "}}")

	panicTemplate = fasttemplate.New(
		"🚨 *Panic Button Pressed*\nReason: {{reason}}\nStep away from the screen.",
		"{{", "}}")
)

// NotifyLock 当日锁定时推送提醒，失败只记日志不向上传播
func (r *Telegram) NotifyLock(message string, netPnl float64, tradeCount int) {
	if r == nil {
		return
	}
	msg := lockTemplate.ExecuteString(map[string]interface{}{
		"message":     message,
		"net_pnl":     cast.ToString(netPnl),
		"trade_count": cast.ToString(tradeCount),
	})
	if err := r.Notify(msg); err != nil {
		r.logger.Error("failed to send lock notification", zap.Error(err))
	}
}

// NotifyPanic 恐慌按钮触发时推送提醒
func (r *Telegram) NotifyPanic(reason string) {
	if r == nil {
		return
	}
	msg := panicTemplate.ExecuteString(map[string]interface{}{
		"reason": reason,
	})
	if err := r.Notify(msg); err != nil {
		r.logger.Error("failed to send panic notification", zap.Error(err))
	}
}
