package chat

import (
	"fmt"
	"strings"
	"time"
)

// MessageType discriminates user chat from system notices.
type MessageType string

const (
	MessageTypePublic  MessageType = "message"
	MessageTypePrivate MessageType = "private_message"
	MessageTypeStatus  MessageType = "status"
)

// RecipientAll is the reserved recipient meaning "visible to everyone".
const RecipientAll = "Todos"

// Texts used for the system notices posted on join and eviction.
const (
	ArrivalText   = "entra na sala..."
	DepartureText = "sai da sala..."
)

// Message is a single room entry. From, To, Type and Time are fixed at
// creation; only Text may change afterwards, and only by its owner.
type Message struct {
	ID   string      `json:"id"`
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	Time string      `json:"time"`
}

// Stamp renders the room-visible timestamp for t (server local time).
func Stamp(t time.Time) string {
	return t.Format("15:04:05")
}

// NewUserMessage validates and builds a user-authored message. Status
// messages are never accepted here; those come from NewStatusMessage.
func NewUserMessage(from, to, text string, msgType MessageType, now time.Time) (Message, error) {
	if strings.TrimSpace(from) == "" {
		return Message{}, fmt.Errorf("%w: sender is required", ErrInvalid)
	}
	if strings.TrimSpace(to) == "" {
		return Message{}, fmt.Errorf("%w: recipient is required", ErrInvalid)
	}
	if strings.TrimSpace(text) == "" {
		return Message{}, fmt.Errorf("%w: text is required", ErrInvalid)
	}
	if msgType != MessageTypePublic && msgType != MessageTypePrivate {
		return Message{}, fmt.Errorf("%w: type must be %q or %q", ErrInvalid, MessageTypePublic, MessageTypePrivate)
	}
	return Message{
		From: from,
		To:   to,
		Text: text,
		Type: msgType,
		Time: Stamp(now),
	}, nil
}

// NewStatusMessage builds a broadcast system notice attributed to from.
func NewStatusMessage(from, text string, now time.Time) Message {
	return Message{
		From: from,
		To:   RecipientAll,
		Text: text,
		Type: MessageTypeStatus,
		Time: Stamp(now),
	}
}
