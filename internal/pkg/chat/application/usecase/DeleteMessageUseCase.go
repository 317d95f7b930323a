package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// DeleteMessageInput identifies the message and the requesting identity.
type DeleteMessageInput struct {
	ID   string
	User string
}

// DeleteMessageUseCase removes a message the requester owns. Existence
// is always checked before ownership.
type DeleteMessageUseCase struct {
	Store port.Store
}

func NewDeleteMessageUseCase(store port.Store) *DeleteMessageUseCase {
	return &DeleteMessageUseCase{Store: store}
}

func (uc *DeleteMessageUseCase) Execute(ctx context.Context, in DeleteMessageInput) error {
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

	err = uc.Store.DeleteMessage(ctx, in.ID)
	if errors.Is(err, port.ErrNotFound) {
		return chat.ErrMessageNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
