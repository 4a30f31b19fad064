package web

import (
	"context"
	"sync"

	"telegram-menu-bot/internal/domain/model"
)

type mockDispatcher struct {
	mu     sync.Mutex
	events []model.Event
	err    error
	panics bool
}

func (m *mockDispatcher) Dispatch(ctx context.Context, ev model.Event) (model.Reply, error) {
	if m.panics {
		panic("boom")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return model.Reply{Text: "ok"}, m.err
}

func (m *mockDispatcher) calls() []model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Event(nil), m.events...)
}

type sentMessage struct {
	ChatID int64
	Text   string
	Menu   *model.MenuDefinition
}

// recordingMessenger satisfies adapter.Messenger for end-to-end handler tests.
type recordingMessenger struct {
	mu       sync.Mutex
	messages []sentMessage
	edits    int
	answers  int
}

func (m *recordingMessenger) SendMessage(ctx context.Context, chatID int64, text string, menu *model.MenuDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, sentMessage{ChatID: chatID, Text: text, Menu: menu})
	return nil
}

func (m *recordingMessenger) EditMessage(ctx context.Context, chatID int64, messageID int, text string, menu *model.MenuDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits++
	return nil
}

func (m *recordingMessenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers++
	return nil
}
