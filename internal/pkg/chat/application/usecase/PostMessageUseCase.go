package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// PostMessageInput carries a user-authored message to append to the log.
type PostMessageInput struct {
	From string
	To   string
	Text string
	Type chat.MessageType
}

// PostMessageUseCase validates and persists a user message. The sender
// must be a registered participant; an unknown sender is a validation
// failure, not a not-found, matching the transport contract.
type PostMessageUseCase struct {
	Store port.Store
	Clock func() time.Time
}

func NewPostMessageUseCase(store port.Store) *PostMessageUseCase {
	return &PostMessageUseCase{Store: store, Clock: time.Now}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, in PostMessageInput) (*chat.Message, error) {
	msg, err := chat.NewUserMessage(in.From, in.To, in.Text, in.Type, uc.Clock())
	if err != nil {
		return nil, err
	}

	_, err = uc.Store.FindParticipantByName(ctx, in.From)
	if errors.Is(err, port.ErrNotFound) {
		return nil, fmt.Errorf("%w: sender %q is not in the room", chat.ErrInvalid, in.From)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	id, err := uc.Store.InsertMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id
	return &msg, nil
}
