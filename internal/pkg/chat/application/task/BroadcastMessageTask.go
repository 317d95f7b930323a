package task

import (
	"context"
	"encoding/json"

	qport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/queue/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/realtime"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// BroadcastMessageTaskType is the queue task name for pushing a freshly
// posted message to connected websocket sessions.
const BroadcastMessageTaskType = "chat:broadcast_message"

// BroadcastMessageTaskPayload is the JSON payload transported via the
// queue. Kept separate from the domain type so queue encoding can evolve
// independently.
type BroadcastMessageTaskPayload struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

// NewBroadcastMessageTask wraps m into a queue task.
func NewBroadcastMessageTask(m chat.Message) (qport.Task, error) {
	payload, err := json.Marshal(BroadcastMessageTaskPayload{
		ID:   m.ID,
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Type: string(m.Type),
		Time: m.Time,
	})
	if err != nil {
		return qport.Task{}, err
	}
	return qport.Task{Type: BroadcastMessageTaskType, Payload: payload}, nil
}

// RegisterBroadcastMessageTask binds the fan-out handler to the server.
// Delivery honors the same visibility rule as the HTTP message listing,
// so private traffic only reaches its two parties.
func RegisterBroadcastMessageTask(srv qport.Server, router *realtime.Router) {
	srv.Register(BroadcastMessageTaskType, func(_ context.Context, t qport.Task) error {
		var p BroadcastMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payload: retrying cannot help.
			return err
		}

		msg := chat.Message{
			ID:   p.ID,
			From: p.From,
			To:   p.To,
			Text: p.Text,
			Type: chat.MessageType(p.Type),
			Time: p.Time,
		}
		out, err := json.Marshal(msg)
		if err != nil {
			return err
		}

		router.Broadcast(out, func(user string) bool {
			return chat.VisibleTo(msg, user)
		})
		return nil
	})
}
