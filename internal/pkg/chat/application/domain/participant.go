package chat

import (
	"fmt"
	"strings"
	"time"
)

// Participant is a member of the room. Name is unique among active
// participants; LastStatus advances on every heartbeat and decides
// eviction during the presence sweep.
type Participant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	LastStatus time.Time `json:"lastStatus"`
}

// NewParticipant validates the name and stamps the first heartbeat.
func NewParticipant(name string, now time.Time) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if name == RecipientAll {
		return Participant{}, fmt.Errorf("%w: %q is a reserved name", ErrInvalid, RecipientAll)
	}
	return Participant{Name: name, LastStatus: now}, nil
}

// Stale reports whether the participant missed its heartbeat window.
func (p Participant) Stale(now time.Time, staleAfter time.Duration) bool {
	return now.Sub(p.LastStatus) > staleAfter
}
