package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	cacheport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/cache/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// RosterCacheKey holds the JSON-encoded active participant list. Join
// and eviction delete it; reads repopulate it with a short TTL.
const RosterCacheKey = "chat:roster"

// ListParticipantsUseCase returns the active roster, read through the
// cache when one is configured. Cache failures degrade to a store read.
type ListParticipantsUseCase struct {
	Store port.Store
	Cache cacheport.Cache // optional
	TTL   time.Duration
	Log   *slog.Logger
}

func NewListParticipantsUseCase(store port.Store) *ListParticipantsUseCase {
	return &ListParticipantsUseCase{Store: store, TTL: 15 * time.Second, Log: slog.Default()}
}

func (uc *ListParticipantsUseCase) Execute(ctx context.Context) ([]chat.Participant, error) {
	if uc.Cache != nil {
		raw, err := uc.Cache.Get(ctx, RosterCacheKey)
		if err == nil {
			var roster []chat.Participant
			if jsonErr := json.Unmarshal([]byte(raw), &roster); jsonErr == nil {
				return roster, nil
			}
		} else if !errors.Is(err, cacheport.ErrMiss) {
			uc.Log.Warn("roster cache read failed", "err", err)
		}
	}

	roster, err := uc.Store.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		if raw, err := json.Marshal(roster); err == nil {
			if err := uc.Cache.Set(ctx, RosterCacheKey, string(raw), uc.TTL); err != nil {
				uc.Log.Warn("roster cache write failed", "err", err)
			}
		}
	}

	return roster, nil
}
