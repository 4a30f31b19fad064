package telegram

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"telegram-menu-bot/internal/domain/model"
	"telegram-menu-bot/internal/domain/ports/adapter"
	"telegram-menu-bot/internal/infra/logging"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements the platform port for local/dev runs.
// It logs messages instead of calling the Bot API.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string, menu *model.MenuDefinition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.Info().Int64("chat_id", chatID).Str("text", text).Str("buttons", describe(menu)).Msg("[noop-telegram] sendMessage")
	return nil
}

func (b *NoopBotAdapter) EditMessage(ctx context.Context, chatID int64, messageID int, text string, menu *model.MenuDefinition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.Info().Int64("chat_id", chatID).Int("message_id", messageID).Str("text", text).Str("buttons", describe(menu)).Msg("[noop-telegram] editMessageText")
	return nil
}

func (b *NoopBotAdapter) AnswerCallback(ctx context.Context, callbackID, text string) error {
	b.log.Info().Str("callback_id", callbackID).Str("toast", text).Msg("[noop-telegram] answerCallbackQuery")
	return nil
}

func (b *NoopBotAdapter) SetWebhook(ctx context.Context, url string, dropPending bool) error {
	b.log.Info().Bool("drop_pending", dropPending).Msg("[noop-telegram] setWebhook")
	return nil
}

func (b *NoopBotAdapter) DeleteWebhook(ctx context.Context, dropPending bool) error {
	b.log.Info().Msg("[noop-telegram] deleteWebhook")
	return nil
}

func (b *NoopBotAdapter) WebhookInfo(ctx context.Context) (adapter.WebhookStatus, error) {
	return adapter.WebhookStatus{}, nil
}

func (b *NoopBotAdapter) Close() {}

// describe renders a menu as "[a|b] [c]".
func describe(menu *model.MenuDefinition) string {
	if menu == nil {
		return ""
	}
	var sb strings.Builder
	for i, row := range menu.Rows {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('[')
		for j, btn := range row {
			if j > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(btn.ID)
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
