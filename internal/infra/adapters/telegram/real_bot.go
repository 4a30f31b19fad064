package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-menu-bot/internal/config"
	"telegram-menu-bot/internal/domain/model"
	"telegram-menu-bot/internal/domain/ports/adapter"
	"telegram-menu-bot/internal/infra/logging"
	"telegram-menu-bot/internal/infra/metrics"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// AllowedUpdates limits webhook deliveries to what the dispatcher handles.
var AllowedUpdates = []string{"message", "callback_query"}

// RealTelegramBotAdapter talks to the Bot API through tgbotapi.
type RealTelegramBotAdapter struct {
	bot    *tgbotapi.BotAPI
	client *http.Client
	token  string
	log    *zerolog.Logger
}

// NewRealTelegramBotAdapter builds the client and verifies the token with getMe.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{Timeout: 30 * time.Second}

	start := time.Now()
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, client)
	metrics.ObserveTelegramCall("getMe", start, err)
	if err != nil {
		return nil, redactErr("getMe", err, cfg.Token)
	}
	bot.Debug = cfg.Debug

	logger.Info().Str("username", bot.Self.UserName).Msg("telegram bot authorized")
	return &RealTelegramBotAdapter{
		bot:    bot,
		client: client,
		token:  cfg.Token,
		log:    logger,
	}, nil
}

func (r *RealTelegramBotAdapter) Username() string { return r.bot.Self.UserName }

// SendMessage posts a new message, attaching menu as an inline keyboard.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string, menu *model.MenuDefinition) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if menu != nil {
		msg.ReplyMarkup = inlineKeyboard(menu)
	}
	return r.call(ctx, "sendMessage", func() error {
		_, err := r.bot.Send(msg)
		return err
	})
}

// EditMessage rewrites the text and keyboard of an existing message.
func (r *RealTelegramBotAdapter) EditMessage(ctx context.Context, chatID int64, messageID int, text string, menu *model.MenuDefinition) error {
	var edit tgbotapi.EditMessageTextConfig
	if menu != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, inlineKeyboard(menu))
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	err := r.call(ctx, "editMessageText", func() error {
		_, err := r.bot.Request(edit)
		return err
	})
	if isNotModified(err) {
		// pressing the button of the screen already shown
		return nil
	}
	return err
}

func (r *RealTelegramBotAdapter) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return r.call(ctx, "answerCallbackQuery", func() error {
		_, err := r.bot.Request(tgbotapi.NewCallback(callbackID, text))
		return err
	})
}

func (r *RealTelegramBotAdapter) SetWebhook(ctx context.Context, url string, dropPending bool) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return redactErr("setWebhook", err, r.token)
	}
	wh.DropPendingUpdates = dropPending
	wh.AllowedUpdates = AllowedUpdates
	return r.call(ctx, "setWebhook", func() error {
		_, err := r.bot.Request(wh)
		return err
	})
}

func (r *RealTelegramBotAdapter) DeleteWebhook(ctx context.Context, dropPending bool) error {
	return r.call(ctx, "deleteWebhook", func() error {
		_, err := r.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: dropPending})
		return err
	})
}

func (r *RealTelegramBotAdapter) WebhookInfo(ctx context.Context) (adapter.WebhookStatus, error) {
	var info tgbotapi.WebhookInfo
	err := r.call(ctx, "getWebhookInfo", func() error {
		var err error
		info, err = r.bot.GetWebhookInfo()
		return err
	})
	if err != nil {
		return adapter.WebhookStatus{}, err
	}
	return adapter.WebhookStatus{
		URL:                logging.RedactIn(info.URL, r.token),
		PendingUpdateCount: info.PendingUpdateCount,
		LastErrorMessage:   info.LastErrorMessage,
		LastErrorDate:      info.LastErrorDate,
	}, nil
}

// Close drops idle keep-alive connections to the Bot API.
func (r *RealTelegramBotAdapter) Close() {
	r.client.CloseIdleConnections()
}

// call runs one Bot API request. tgbotapi has no context support, so
// cancellation is only honoured before the request starts.
func (r *RealTelegramBotAdapter) call(ctx context.Context, method string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	metrics.ObserveTelegramCall(method, start, err)
	if err != nil {
		logging.With(ctx, r.log).Debug().Str("method", method).Dur("duration", time.Since(start)).Msg("telegram call failed")
		return redactErr(method, err, r.token)
	}
	return nil
}

// inlineKeyboard converts a menu into tgbotapi inline keyboard rows.
func inlineKeyboard(menu *model.MenuDefinition) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu.Rows))
	for _, row := range menu.Rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Label)
			if label == "" {
				label = "•"
			}
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(label, btn.ID))
		}
		kbRows = append(kbRows, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

// apiError hides the bot token that net/url errors embed in request URLs.
type apiError struct {
	method string
	msg    string
	cause  error
}

func (e *apiError) Error() string { return e.method + ": " + e.msg }
func (e *apiError) Unwrap() error { return e.cause }

func redactErr(method string, err error, token string) error {
	if err == nil {
		return nil
	}
	return &apiError{method: method, msg: logging.RedactIn(err.Error(), token), cause: err}
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
