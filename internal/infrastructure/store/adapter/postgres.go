package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// PgStore implements port.Store over a pgx connection pool. Both
// collections map to plain tables whose serial id preserves insertion
// order for the list queries.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

var _ port.Store = (*PgStore)(nil)

func (s *PgStore) InsertParticipant(ctx context.Context, p chat.Participant) (string, error) {
	if s == nil || s.pool == nil {
		return "", errors.New("PgStore: nil pool")
	}
	var id string
	err := s.pool.QueryRow(ctx,
		"INSERT INTO participants (name, last_status) VALUES ($1, $2) RETURNING id::text",
		p.Name, p.LastStatus,
	).Scan(&id)
	return id, err
}

func (s *PgStore) ListParticipants(ctx context.Context) ([]chat.Participant, error) {
	if s == nil || s.pool == nil {
		return nil, errors.New("PgStore: nil pool")
	}
	rows, err := s.pool.Query(ctx,
		"SELECT id::text, name, last_status FROM participants ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.Participant
	for rows.Next() {
		var p chat.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.LastStatus); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PgStore) FindParticipantByName(ctx context.Context, name string) (chat.Participant, error) {
	if s == nil || s.pool == nil {
		return chat.Participant{}, errors.New("PgStore: nil pool")
	}
	var p chat.Participant
	err := s.pool.QueryRow(ctx,
		"SELECT id::text, name, last_status FROM participants WHERE name = $1",
		name,
	).Scan(&p.ID, &p.Name, &p.LastStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.Participant{}, port.ErrNotFound
	}
	return p, err
}

func (s *PgStore) TouchParticipant(ctx context.Context, id string, at time.Time) error {
	if s == nil || s.pool == nil {
		return errors.New("PgStore: nil pool")
	}
	ct, err := s.pool.Exec(ctx,
		"UPDATE participants SET last_status = $2 WHERE id = $1::bigint", id, at)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *PgStore) DeleteParticipant(ctx context.Context, id string) error {
	if s == nil || s.pool == nil {
		return errors.New("PgStore: nil pool")
	}
	ct, err := s.pool.Exec(ctx,
		"DELETE FROM participants WHERE id = $1::bigint", id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *PgStore) InsertMessage(ctx context.Context, m chat.Message) (string, error) {
	if s == nil || s.pool == nil {
		return "", errors.New("PgStore: nil pool")
	}
	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (from_name, to_name, text, type, time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text
	`, m.From, m.To, m.Text, string(m.Type), m.Time).Scan(&id)
	return id, err
}

func (s *PgStore) ListMessages(ctx context.Context) ([]chat.Message, error) {
	if s == nil || s.pool == nil {
		return nil, errors.New("PgStore: nil pool")
	}
	rows, err := s.pool.Query(ctx,
		"SELECT id::text, from_name, to_name, text, type, time FROM messages ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.Message
	for rows.Next() {
		var (
			m       chat.Message
			msgType string
		)
		if err := rows.Scan(&m.ID, &m.From, &m.To, &m.Text, &msgType, &m.Time); err != nil {
			return nil, err
		}
		m.Type = chat.MessageType(msgType)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PgStore) FindMessageByID(ctx context.Context, id string) (chat.Message, error) {
	if s == nil || s.pool == nil {
		return chat.Message{}, errors.New("PgStore: nil pool")
	}
	var (
		m       chat.Message
		msgType string
	)
	err := s.pool.QueryRow(ctx,
		"SELECT id::text, from_name, to_name, text, type, time FROM messages WHERE id = $1::bigint",
		id,
	).Scan(&m.ID, &m.From, &m.To, &m.Text, &msgType, &m.Time)
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.Message{}, port.ErrNotFound
	}
	m.Type = chat.MessageType(msgType)
	return m, err
}

func (s *PgStore) UpdateMessageText(ctx context.Context, id string, text string) error {
	if s == nil || s.pool == nil {
		return errors.New("PgStore: nil pool")
	}
	ct, err := s.pool.Exec(ctx,
		"UPDATE messages SET text = $2 WHERE id = $1::bigint", id, text)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *PgStore) DeleteMessage(ctx context.Context, id string) error {
	if s == nil || s.pool == nil {
		return errors.New("PgStore: nil pool")
	}
	ct, err := s.pool.Exec(ctx,
		"DELETE FROM messages WHERE id = $1::bigint", id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *PgStore) Ping(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return errors.New("PgStore: nil pool")
	}
	return s.pool.Ping(ctx)
}

func (s *PgStore) Close(_ context.Context) error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}
