package model

import "fmt"

// EventKind discriminates the inbound Event union.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventStartCommand
	EventTextMessage
	EventButtonPress
)

func (k EventKind) String() string {
	switch k {
	case EventStartCommand:
		return "start"
	case EventTextMessage:
		return "text"
	case EventButtonPress:
		return "button"
	default:
		return "unknown"
	}
}

// Event is a single inbound update reduced to what the dispatcher routes on,
// plus the coordinates needed to deliver the reply.
type Event struct {
	Kind EventKind

	// Text is the message body for EventTextMessage.
	Text string
	// Data is the button identifier for EventButtonPress.
	Data string

	UpdateID   int
	ChatID     int64
	UserID     int64
	MessageID  int    // message carrying the pressed keyboard; 0 when unknown
	CallbackID string // callback query id for EventButtonPress
}

func StartCommand(chatID, userID int64) Event {
	return Event{Kind: EventStartCommand, ChatID: chatID, UserID: userID}
}

func TextMessage(chatID, userID int64, body string) Event {
	return Event{Kind: EventTextMessage, ChatID: chatID, UserID: userID, Text: body}
}

func ButtonPress(chatID, userID int64, messageID int, callbackID, data string) Event {
	return Event{
		Kind:       EventButtonPress,
		ChatID:     chatID,
		UserID:     userID,
		MessageID:  messageID,
		CallbackID: callbackID,
		Data:       data,
	}
}

// Discriminator is the routing key: the command, the text body or the button identifier.
func (e Event) Discriminator() string {
	switch e.Kind {
	case EventStartCommand:
		return "/start"
	case EventTextMessage:
		return e.Text
	case EventButtonPress:
		return e.Data
	default:
		return ""
	}
}

// CanEdit reports whether the reply may edit the message the button belongs to.
func (e Event) CanEdit() bool {
	return e.Kind == EventButtonPress && e.ChatID != 0 && e.MessageID != 0
}

func (e Event) String() string {
	return fmt.Sprintf("%s(chat=%d, key=%q)", e.Kind, e.ChatID, e.Discriminator())
}
