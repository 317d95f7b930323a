package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// HeartbeatInput identifies the participant renewing its liveness.
type HeartbeatInput struct {
	Name string
}

// HeartbeatUseCase renews lastStatus for a registered participant. An
// evicted or never-registered name yields ErrParticipantNotFound; the
// client must register again.
type HeartbeatUseCase struct {
	Store port.Store
	Clock func() time.Time
}

func NewHeartbeatUseCase(store port.Store) *HeartbeatUseCase {
	return &HeartbeatUseCase{Store: store, Clock: time.Now}
}

func (uc *HeartbeatUseCase) Execute(ctx context.Context, in HeartbeatInput) error {
	p, err := uc.Store.FindParticipantByName(ctx, in.Name)
	if errors.Is(err, port.ErrNotFound) {
		return chat.ErrParticipantNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	err = uc.Store.TouchParticipant(ctx, p.ID, uc.Clock())
	if errors.Is(err, port.ErrNotFound) {
		// Evicted between the lookup and the touch; same outcome for the caller.
		return chat.ErrParticipantNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
