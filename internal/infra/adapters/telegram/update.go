package telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-menu-bot/internal/domain"
	"telegram-menu-bot/internal/domain/model"
)

// DecodeUpdate reads one webhook payload. The body must hold exactly one
// JSON value.
func DecodeUpdate(r io.Reader) (tgbotapi.Update, error) {
	var u tgbotapi.Update
	dec := json.NewDecoder(r)
	if err := dec.Decode(&u); err != nil {
		return tgbotapi.Update{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after update")
		}
		return tgbotapi.Update{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return u, nil
}

// EventFromUpdate reduces an update to the event the dispatcher routes on.
// Updates other than messages and callback queries yield ErrUnsupportedUpdate.
func EventFromUpdate(u tgbotapi.Update) (model.Event, error) {
	var ev model.Event
	switch {
	case u.CallbackQuery != nil:
		q := u.CallbackQuery
		var chatID, userID int64
		var messageID int
		if q.From != nil {
			userID = q.From.ID
			chatID = q.From.ID
		}
		if q.Message != nil && q.Message.Chat != nil {
			chatID = q.Message.Chat.ID
			messageID = q.Message.MessageID
		}
		if chatID == 0 {
			return model.Event{}, fmt.Errorf("%w: callback query without chat", domain.ErrUnsupportedUpdate)
		}
		ev = model.ButtonPress(chatID, userID, messageID, q.ID, q.Data)

	case u.Message != nil:
		m := u.Message
		if m.Chat == nil {
			return model.Event{}, fmt.Errorf("%w: message without chat", domain.ErrUnsupportedUpdate)
		}
		var userID int64
		if m.From != nil {
			userID = m.From.ID
		}
		if isStartCommand(m) {
			ev = model.StartCommand(m.Chat.ID, userID)
		} else {
			ev = model.TextMessage(m.Chat.ID, userID, m.Text)
		}

	default:
		return model.Event{}, domain.ErrUnsupportedUpdate
	}
	ev.UpdateID = u.UpdateID
	return ev, nil
}

// isStartCommand accepts "/start", "/start payload" and "/start@botname",
// with or without a bot_command entity.
func isStartCommand(m *tgbotapi.Message) bool {
	if m.IsCommand() {
		return m.Command() == "start"
	}
	fields := strings.Fields(m.Text)
	if len(fields) == 0 {
		return false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd == "/start"
}
