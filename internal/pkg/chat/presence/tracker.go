package presence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	cacheport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/cache/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/realtime"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

const defaultWindow = 15 * time.Second

// Options tunes the tracker. Zero values fall back to the 15 second
// room defaults.
type Options struct {
	// Interval between sweeps.
	Interval time.Duration

	// StaleAfter is the heartbeat age beyond which a participant is evicted.
	StaleAfter time.Duration

	// NoticeSender overrides the identity departure notices are
	// attributed to. Empty means the evicted participant's own name.
	NoticeSender string

	// Cache, when set, has the roster key invalidated after evictions.
	Cache cacheport.Cache

	// Router, when set, receives the departure notices for connected clients.
	Router *realtime.Router
}

// Tracker owns the eviction sweep: it periodically scans the roster,
// evicts participants whose heartbeat went stale and posts a broadcast
// departure notice per eviction.
type Tracker struct {
	store port.Store
	log   *slog.Logger
	opts  Options
}

func NewTracker(store port.Store, log *slog.Logger, opts Options) *Tracker {
	if opts.Interval <= 0 {
		opts.Interval = defaultWindow
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = defaultWindow
	}
	return &Tracker{store: store, log: log, opts: opts}
}

// Run sweeps once immediately, then on every interval tick until ctx is
// canceled. Sweep failures are logged, never propagated; the next tick
// retries whatever is still stale.
func (t *Tracker) Run(ctx context.Context) error {
	t.log.Info("presence tracker started",
		"interval", t.opts.Interval, "staleAfter", t.opts.StaleAfter)

	t.Sweep(ctx, time.Now())

	ticker := time.NewTicker(t.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.log.Debug("presence tracker stopping")
			return ctx.Err()
		case now := <-ticker.C:
			t.Sweep(ctx, now)
		}
	}
}

// Sweep loads the roster, collects the stale participants and processes
// each eviction as its own unit of work: insert the departure notice,
// then delete the record. Units run concurrently and are all awaited
// before Sweep returns, so sweeps never overlap on the same records.
// One failed unit never aborts the others.
func (t *Tracker) Sweep(ctx context.Context, now time.Time) {
	participants, err := t.store.ListParticipants(ctx)
	if err != nil {
		t.log.Error("sweep: loading participants failed", "err", err)
		return
	}

	stale := lo.Filter(participants, func(p chat.Participant, _ int) bool {
		return p.Stale(now, t.opts.StaleAfter)
	})
	if len(stale) == 0 {
		return
	}

	notices := make([]*chat.Message, len(stale))
	var wg sync.WaitGroup
	for i, p := range stale {
		wg.Add(1)
		go func(i int, p chat.Participant) {
			defer wg.Done()
			notices[i] = t.evict(ctx, p, now)
		}(i, p)
	}
	wg.Wait()

	if t.opts.Cache != nil {
		if err := t.opts.Cache.Del(ctx, usecase.RosterCacheKey); err != nil {
			t.log.Warn("sweep: roster cache invalidation failed", "err", err)
		}
	}
	t.push(notices)
}

// evict posts the departure notice and removes the participant. The two
// steps are not transactional; a notice without a matching delete is an
// accepted best-effort outcome and the next sweep retries the delete.
func (t *Tracker) evict(ctx context.Context, p chat.Participant, now time.Time) *chat.Message {
	from := t.opts.NoticeSender
	if from == "" {
		from = p.Name
	}
	notice := chat.NewStatusMessage(from, chat.DepartureText, now)

	id, err := t.store.InsertMessage(ctx, notice)
	if err != nil {
		t.log.Error("eviction: departure notice failed", "participant", p.Name, "err", err)
		return nil
	}
	notice.ID = id

	err = t.store.DeleteParticipant(ctx, p.ID)
	switch {
	case errors.Is(err, port.ErrNotFound):
		// Already gone; a concurrent delete won.
		t.log.Debug("eviction: participant already removed", "participant", p.Name)
	case err != nil:
		t.log.Error("eviction: delete failed", "participant", p.Name, "err", err)
	default:
		t.log.Info("participant evicted for inactivity", "participant", p.Name)
	}
	return &notice
}

func (t *Tracker) push(notices []*chat.Message) {
	if t.opts.Router == nil {
		return
	}
	for _, notice := range notices {
		if notice == nil {
			continue
		}
		if payload, err := json.Marshal(notice); err == nil {
			t.opts.Router.Broadcast(payload, nil)
		}
	}
}
