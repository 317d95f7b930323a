package usecase

import (
	"context"
	"fmt"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// ListMessagesInput asks for the messages visible to User. A nil Limit
// returns the full visible log in insertion order; a positive Limit
// returns only that many trailing messages, newest first.
type ListMessagesInput struct {
	User  string
	Limit *int
}

// ListMessagesUseCase applies the visibility filter over the whole log.
type ListMessagesUseCase struct {
	Store port.Store
}

func NewListMessagesUseCase(store port.Store) *ListMessagesUseCase {
	return &ListMessagesUseCase{Store: store}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]chat.Message, error) {
	// Limit is validated before any filtering happens.
	if in.Limit != nil && *in.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", chat.ErrInvalid)
	}

	all, err := uc.Store.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	visible := chat.Visible(all, in.User)
	if in.Limit == nil {
		return visible, nil
	}
	return chat.NewestFirst(visible, *in.Limit), nil
}
