package port

import (
	"context"
	"time"

	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// Store is the persistence contract for the two room collections,
// participants and messages. Adapters must provide atomic single-record
// operations; no multi-record transaction is ever assumed by callers.
// List operations return records in insertion order.
type Store interface {
	// InsertParticipant stores p and returns the assigned id.
	InsertParticipant(ctx context.Context, p chat.Participant) (string, error)

	// ListParticipants returns every active participant.
	ListParticipants(ctx context.Context) ([]chat.Participant, error)

	// FindParticipantByName returns ErrNotFound when no participant has
	// that name.
	FindParticipantByName(ctx context.Context, name string) (chat.Participant, error)

	// TouchParticipant renews the heartbeat of the participant with the
	// given id. Returns ErrNotFound if the record is gone.
	TouchParticipant(ctx context.Context, id string, at time.Time) error

	// DeleteParticipant removes the record by id. Returns ErrNotFound if
	// it was already gone.
	DeleteParticipant(ctx context.Context, id string) error

	// InsertMessage appends m to the log and returns the assigned id.
	InsertMessage(ctx context.Context, m chat.Message) (string, error)

	// ListMessages returns the full message log in insertion order.
	ListMessages(ctx context.Context) ([]chat.Message, error)

	// FindMessageByID returns ErrNotFound when the id is unknown.
	FindMessageByID(ctx context.Context, id string) (chat.Message, error)

	// UpdateMessageText replaces only the text of the message; every
	// other field is immutable. Returns ErrNotFound if the id is unknown.
	UpdateMessageText(ctx context.Context, id string, text string) error

	// DeleteMessage removes the message by id. Returns ErrNotFound if the
	// id is unknown.
	DeleteMessage(ctx context.Context, id string) error

	// Ping verifies connectivity with the backing store.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

// ErrNotFound signals an absent record in a typed way so callers can
// tell "no such record" apart from transport errors.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "store: record not found" }
