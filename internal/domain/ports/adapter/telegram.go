// File: internal/domain/ports/adapter/telegram.go
package adapter

import (
	"context"

	"telegram-menu-bot/internal/domain/model"
)

// WebhookStatus is the platform's view of the current registration.
type WebhookStatus struct {
	URL                string
	PendingUpdateCount int
	LastErrorMessage   string
	LastErrorDate      int
}

// Messenger is the outbound port to the bot platform.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, menu *model.MenuDefinition) error
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, menu *model.MenuDefinition) error
	// AnswerCallback acknowledges a button press. An empty text stops the
	// client spinner without showing a toast.
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// WebhookRegistrar manages the webhook registration with the platform.
type WebhookRegistrar interface {
	SetWebhook(ctx context.Context, url string, dropPending bool) error
	DeleteWebhook(ctx context.Context, dropPending bool) error
	WebhookInfo(ctx context.Context) (WebhookStatus, error)
	// Close releases the HTTP session held by the client.
	Close()
}

// TelegramBotAdapter is the full platform client.
type TelegramBotAdapter interface {
	Messenger
	WebhookRegistrar
}
