package chat

import "github.com/samber/lo"

// VisibleTo reports whether m may be shown to user: broadcasts, messages
// addressed to the user and messages the user sent. Private traffic
// between two other parties stays hidden.
func VisibleTo(m Message, user string) bool {
	return m.To == user || m.To == RecipientAll || m.From == user
}

// Visible filters all down to the messages user may see, preserving the
// original insertion order. Pure: no clock, no store.
func Visible(all []Message, user string) []Message {
	return lo.Filter(all, func(m Message, _ int) bool {
		return VisibleTo(m, user)
	})
}

// NewestFirst returns at most limit trailing messages from visible,
// reversed so the most recent comes first. limit must be positive;
// callers validate before filtering.
func NewestFirst(visible []Message, limit int) []Message {
	if limit > len(visible) {
		limit = len(visible)
	}
	tail := make([]Message, limit)
	copy(tail, visible[len(visible)-limit:])
	return lo.Reverse(tail)
}
