package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// MemStore keeps both collections in process memory. It backs local runs
// and the test suite; records do not survive a restart.
type MemStore struct {
	mu           sync.RWMutex
	participants []chat.Participant
	messages     []chat.Message
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

var _ port.Store = (*MemStore)(nil)

func (s *MemStore) InsertParticipant(_ context.Context, p chat.Participant) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.participants = append(s.participants, p)
	return p.ID, nil
}

func (s *MemStore) ListParticipants(_ context.Context) ([]chat.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chat.Participant, len(s.participants))
	copy(out, s.participants)
	return out, nil
}

func (s *MemStore) FindParticipantByName(_ context.Context, name string) (chat.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants {
		if p.Name == name {
			return p, nil
		}
	}
	return chat.Participant{}, port.ErrNotFound
}

func (s *MemStore) TouchParticipant(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants {
		if s.participants[i].ID == id {
			s.participants[i].LastStatus = at
			return nil
		}
	}
	return port.ErrNotFound
}

func (s *MemStore) DeleteParticipant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants {
		if s.participants[i].ID == id {
			s.participants = append(s.participants[:i], s.participants[i+1:]...)
			return nil
		}
	}
	return port.ErrNotFound
}

func (s *MemStore) InsertMessage(_ context.Context, m chat.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uuid.NewString()
	s.messages = append(s.messages, m)
	return m.ID, nil
}

func (s *MemStore) ListMessages(_ context.Context) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chat.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (s *MemStore) FindMessageByID(_ context.Context, id string) (chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return chat.Message{}, port.ErrNotFound
}

func (s *MemStore) UpdateMessageText(_ context.Context, id string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Text = text
			return nil
		}
	}
	return port.ErrNotFound
}

func (s *MemStore) DeleteMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return nil
		}
	}
	return port.ErrNotFound
}

func (s *MemStore) Ping(_ context.Context) error { return nil }

func (s *MemStore) Close(_ context.Context) error { return nil }
