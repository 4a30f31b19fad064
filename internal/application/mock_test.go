package application_test

import (
	"context"
	"sync"

	"telegram-menu-bot/internal/domain/model"
	"telegram-menu-bot/internal/domain/ports/adapter"
)

type sentMessage struct {
	Method    string
	ChatID    int64
	MessageID int
	Text      string
	Menu      *model.MenuDefinition
}

type answeredCallback struct {
	ID   string
	Text string
}

// mockMessenger records every outbound call.
type mockMessenger struct {
	mu        sync.Mutex
	messages  []sentMessage
	callbacks []answeredCallback

	sendErr   error
	editErr   error
	answerErr error
}

var _ adapter.Messenger = (*mockMessenger)(nil)

func (m *mockMessenger) SendMessage(_ context.Context, chatID int64, text string, menu *model.MenuDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, sentMessage{Method: "sendMessage", ChatID: chatID, Text: text, Menu: menu})
	return m.sendErr
}

func (m *mockMessenger) EditMessage(_ context.Context, chatID int64, messageID int, text string, menu *model.MenuDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, sentMessage{Method: "editMessageText", ChatID: chatID, MessageID: messageID, Text: text, Menu: menu})
	return m.editErr
}

func (m *mockMessenger) AnswerCallback(_ context.Context, callbackID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, answeredCallback{ID: callbackID, Text: text})
	return m.answerErr
}

func (m *mockMessenger) sent() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.messages...)
}

func (m *mockMessenger) answered() []answeredCallback {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]answeredCallback(nil), m.callbacks...)
}

// mockRegistrar records lifecycle calls.
type mockRegistrar struct {
	setURL    string
	setDrop   bool
	deleted   bool
	closed    bool
	setErr    error
	deleteErr error
	info      adapter.WebhookStatus
}

var _ adapter.WebhookRegistrar = (*mockRegistrar)(nil)

func (r *mockRegistrar) SetWebhook(_ context.Context, url string, dropPending bool) error {
	r.setURL = url
	r.setDrop = dropPending
	return r.setErr
}

func (r *mockRegistrar) DeleteWebhook(_ context.Context, _ bool) error {
	r.deleted = true
	return r.deleteErr
}

func (r *mockRegistrar) WebhookInfo(_ context.Context) (adapter.WebhookStatus, error) {
	return r.info, nil
}

func (r *mockRegistrar) Close() { r.closed = true }
