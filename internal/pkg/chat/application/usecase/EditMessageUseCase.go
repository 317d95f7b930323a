package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// EditMessageInput carries the replacement body for an owned message.
// Only Text is ever applied; From, To, Type and Time are immutable.
type EditMessageInput struct {
	ID   string
	User string
	To   string
	Text string
	Type chat.MessageType
}

// EditMessageUseCase rewrites the text of a message the requester owns.
// Existence is always checked before ownership.
type EditMessageUseCase struct {
	Store port.Store
}

func NewEditMessageUseCase(store port.Store) *EditMessageUseCase {
	return &EditMessageUseCase{Store: store}
}

func (uc *EditMessageUseCase) Execute(ctx context.Context, in EditMessageInput) error {
	if strings.TrimSpace(in.Text) == "" {
		return fmt.Errorf("%w: text is required", chat.ErrInvalid)
	}
	if strings.TrimSpace(in.To) == "" {
		return fmt.Errorf("%w: recipient is required", chat.ErrInvalid)
	}
	if in.Type != chat.MessageTypePublic && in.Type != chat.MessageTypePrivate {
		return fmt.Errorf("%w: type must be %q or %q", chat.ErrInvalid, chat.MessageTypePublic, chat.MessageTypePrivate)
	}

	m, err := uc.Store.FindMessageByID(ctx, in.ID)
	if errors.Is(err, port.ErrNotFound) {
		return chat.ErrMessageNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if m.From != in.User {
		return chat.ErrNotOwner
	}

	err = uc.Store.UpdateMessageText(ctx, in.ID, in.Text)
	if errors.Is(err, port.ErrNotFound) {
		return chat.ErrMessageNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
