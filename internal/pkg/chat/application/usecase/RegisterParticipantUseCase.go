package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	cacheport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/cache/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// RegisterParticipantInput carries the requested room name.
type RegisterParticipantInput struct {
	Name string
}

// RegisterParticipantUseCase joins a participant to the room and posts
// the arrival notice. Name uniqueness among active participants is
// enforced here, not by the store.
type RegisterParticipantUseCase struct {
	Store port.Store
	Cache cacheport.Cache // optional; roster key invalidated on join

	// NoticeSender overrides the identity the arrival notice is
	// attributed to. Empty means the participant's own name.
	NoticeSender string

	Clock func() time.Time
}

func NewRegisterParticipantUseCase(store port.Store) *RegisterParticipantUseCase {
	return &RegisterParticipantUseCase{Store: store, Clock: time.Now}
}

// Execute registers the participant and returns it with its assigned id.
func (uc *RegisterParticipantUseCase) Execute(ctx context.Context, in RegisterParticipantInput) (*chat.Participant, error) {
	now := uc.Clock()

	p, err := chat.NewParticipant(in.Name, now)
	if err != nil {
		return nil, err
	}

	_, err = uc.Store.FindParticipantByName(ctx, p.Name)
	switch {
	case err == nil:
		return nil, chat.ErrNameTaken
	case !errors.Is(err, port.ErrNotFound):
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	id, err := uc.Store.InsertParticipant(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	p.ID = id

	from := uc.NoticeSender
	if from == "" {
		from = p.Name
	}
	notice := chat.NewStatusMessage(from, chat.ArrivalText, now)
	if _, err := uc.Store.InsertMessage(ctx, notice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_ = uc.Cache.Del(ctx, RosterCacheKey)
	}

	return &p, nil
}
