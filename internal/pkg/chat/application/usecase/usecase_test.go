package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/adapter"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

var noon = time.Date(2023, 3, 14, 12, 0, 0, 0, time.Local)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func register(t *testing.T, store *adapter.MemStore, name string) chat.Participant {
	t.Helper()
	uc := NewRegisterParticipantUseCase(store)
	uc.Clock = fixedClock(noon)
	p, err := uc.Execute(context.Background(), RegisterParticipantInput{Name: name})
	require.NoError(t, err)
	return *p
}

func TestRegisterParticipant_PostsArrivalNotice(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()

	p := register(t, store, "Alice")
	require.NotEmpty(t, p.ID)
	require.True(t, p.LastStatus.Equal(noon))

	log, err := store.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	require.Equal(t, "Alice", log[0].From)
	require.Equal(t, chat.RecipientAll, log[0].To)
	require.Equal(t, chat.ArrivalText, log[0].Text)
	require.Equal(t, chat.MessageTypeStatus, log[0].Type)
}

func TestRegisterParticipant_DuplicateNameConflicts(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")

	uc := NewRegisterParticipantUseCase(store)
	_, err := uc.Execute(ctx, RegisterParticipantInput{Name: "Alice"})
	require.ErrorIs(t, err, chat.ErrNameTaken)

	roster, err := store.ListParticipants(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
}

func TestRegisterParticipant_RejectsBlankName(t *testing.T) {
	uc := NewRegisterParticipantUseCase(adapter.NewMemStore())
	_, err := uc.Execute(context.Background(), RegisterParticipantInput{Name: "   "})
	require.ErrorIs(t, err, chat.ErrInvalid)
}

func TestHeartbeat_RenewsLastStatus(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")

	later := noon.Add(10 * time.Second)
	uc := NewHeartbeatUseCase(store)
	uc.Clock = fixedClock(later)
	require.NoError(t, uc.Execute(ctx, HeartbeatInput{Name: "Alice"}))

	p, err := store.FindParticipantByName(ctx, "Alice")
	require.NoError(t, err)
	require.True(t, p.LastStatus.Equal(later))
}

func TestHeartbeat_UnknownNameLeavesRosterUnchanged(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")

	uc := NewHeartbeatUseCase(store)
	err := uc.Execute(ctx, HeartbeatInput{Name: "Bob"})
	require.ErrorIs(t, err, chat.ErrParticipantNotFound)

	roster, err := store.ListParticipants(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.Equal(t, "Alice", roster[0].Name)
}

func TestPostMessage_PersistsWithServerTime(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")

	uc := NewPostMessageUseCase(store)
	uc.Clock = fixedClock(noon)
	msg, err := uc.Execute(ctx, PostMessageInput{
		From: "Alice", To: chat.RecipientAll, Text: "oi", Type: chat.MessageTypePublic,
	})
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)
	require.Equal(t, "12:00:00", msg.Time)
}

func TestPostMessage_UnknownSenderIsValidationFailure(t *testing.T) {
	uc := NewPostMessageUseCase(adapter.NewMemStore())
	_, err := uc.Execute(context.Background(), PostMessageInput{
		From: "Ghost", To: chat.RecipientAll, Text: "boo", Type: chat.MessageTypePublic,
	})
	require.ErrorIs(t, err, chat.ErrInvalid)
}

func seedConversation(t *testing.T, store *adapter.MemStore) {
	t.Helper()
	register(t, store, "Alice")
	register(t, store, "Bob")
	register(t, store, "Carol")

	post := NewPostMessageUseCase(store)
	post.Clock = fixedClock(noon)
	for _, in := range []PostMessageInput{
		{From: "Alice", To: chat.RecipientAll, Text: "oi", Type: chat.MessageTypePublic},
		{From: "Bob", To: "Carol", Text: "psst", Type: chat.MessageTypePrivate},
		{From: "Carol", To: "Alice", Text: "oi Alice", Type: chat.MessageTypePrivate},
	} {
		_, err := post.Execute(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestListMessages_FiltersForRequester(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	seedConversation(t, store)

	uc := NewListMessagesUseCase(store)
	msgs, err := uc.Execute(ctx, ListMessagesInput{User: "Alice"})
	require.NoError(t, err)

	// Three arrival notices, Alice's broadcast and Carol's private reply;
	// Bob's private message to Carol stays hidden.
	require.Len(t, msgs, 5)
	for _, m := range msgs {
		require.True(t, chat.VisibleTo(m, "Alice"))
	}
}

func TestListMessages_LimitReturnsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	seedConversation(t, store)

	uc := NewListMessagesUseCase(store)
	limited, err := uc.Execute(ctx, ListMessagesInput{User: "Alice", Limit: lo.ToPtr(2)})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, "oi Alice", limited[0].Text)
	require.Equal(t, "oi", limited[1].Text)

	full, err := uc.Execute(ctx, ListMessagesInput{User: "Alice"})
	require.NoError(t, err)
	widest, err := uc.Execute(ctx, ListMessagesInput{User: "Alice", Limit: lo.ToPtr(len(full))})
	require.NoError(t, err)
	require.Equal(t, lo.Reverse(append([]chat.Message(nil), full...)), widest)
}

func TestListMessages_NonPositiveLimitIsInvalid(t *testing.T) {
	uc := NewListMessagesUseCase(adapter.NewMemStore())
	for _, limit := range []int{0, -3} {
		_, err := uc.Execute(context.Background(), ListMessagesInput{User: "Alice", Limit: lo.ToPtr(limit)})
		require.ErrorIs(t, err, chat.ErrInvalid)
	}
}

func postOne(t *testing.T, store *adapter.MemStore, from, to, text string) chat.Message {
	t.Helper()
	uc := NewPostMessageUseCase(store)
	uc.Clock = fixedClock(noon)
	msg, err := uc.Execute(context.Background(), PostMessageInput{
		From: from, To: to, Text: text, Type: chat.MessageTypePrivate,
	})
	require.NoError(t, err)
	return *msg
}

func TestEditMessage_OwnerChangesOnlyText(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")
	register(t, store, "Bob")
	msg := postOne(t, store, "Alice", "Bob", "oi")

	uc := NewEditMessageUseCase(store)
	err := uc.Execute(ctx, EditMessageInput{
		ID: msg.ID, User: "Alice", To: "Bob", Text: "oi de novo", Type: chat.MessageTypePrivate,
	})
	require.NoError(t, err)

	got, err := store.FindMessageByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, "oi de novo", got.Text)
	require.Equal(t, msg.From, got.From)
	require.Equal(t, msg.To, got.To)
	require.Equal(t, msg.Type, got.Type)
	require.Equal(t, msg.Time, got.Time)
}

func TestEditMessage_NonOwnerIsRejected(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")
	register(t, store, "Bob")
	msg := postOne(t, store, "Alice", "Bob", "oi")

	uc := NewEditMessageUseCase(store)
	err := uc.Execute(ctx, EditMessageInput{
		ID: msg.ID, User: "Bob", To: "Alice", Text: "hacked", Type: chat.MessageTypePrivate,
	})
	require.ErrorIs(t, err, chat.ErrNotOwner)

	got, err := store.FindMessageByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, "oi", got.Text)
}

func TestEditMessage_MissingMessageChecksExistenceFirst(t *testing.T) {
	store := adapter.NewMemStore()
	uc := NewEditMessageUseCase(store)
	err := uc.Execute(context.Background(), EditMessageInput{
		ID: "nope", User: "Bob", To: "Alice", Text: "x", Type: chat.MessageTypePrivate,
	})
	require.ErrorIs(t, err, chat.ErrMessageNotFound)
}

func TestDeleteMessage_OwnerGate(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")
	register(t, store, "Bob")
	msg := postOne(t, store, "Alice", "Bob", "oi")

	uc := NewDeleteMessageUseCase(store)

	require.ErrorIs(t, uc.Execute(ctx, DeleteMessageInput{ID: msg.ID, User: "Bob"}), chat.ErrNotOwner)
	require.ErrorIs(t, uc.Execute(ctx, DeleteMessageInput{ID: "nope", User: "Alice"}), chat.ErrMessageNotFound)

	require.NoError(t, uc.Execute(ctx, DeleteMessageInput{ID: msg.ID, User: "Alice"}))
	require.ErrorIs(t, uc.Execute(ctx, DeleteMessageInput{ID: msg.ID, User: "Alice"}), chat.ErrMessageNotFound)
}

func TestListParticipants_ReturnsRoster(t *testing.T) {
	ctx := context.Background()
	store := adapter.NewMemStore()
	register(t, store, "Alice")
	register(t, store, "Bob")

	uc := NewListParticipantsUseCase(store)
	roster, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	require.Equal(t, "Alice", roster[0].Name)
	require.Equal(t, "Bob", roster[1].Name)
}
