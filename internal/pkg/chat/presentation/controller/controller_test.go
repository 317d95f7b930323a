package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/adapter"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
	httpHandler "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/presentation/http"
)

func newServer(t *testing.T) (*gin.Engine, *adapter.MemStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := adapter.NewMemStore()
	r := gin.New()
	httpHandler.RegisterRoutes(r.Group("/"), httpHandler.Deps{Store: store, RosterTTL: 15 * time.Second})
	return r, store
}

func do(t *testing.T, r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func joinRoom(t *testing.T, r *gin.Engine, name string) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/participants", "", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestPostParticipants(t *testing.T) {
	r, store := newServer(t)

	w := do(t, r, http.MethodPost, "/participants", "", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		LastStatus int64  `json:"lastStatus"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Alice", created.Name)
	require.NotZero(t, created.LastStatus)

	// duplicate name
	w = do(t, r, http.MethodPost, "/participants", "", `{"name":"Alice"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	// missing / blank name
	w = do(t, r, http.MethodPost, "/participants", "", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = do(t, r, http.MethodPost, "/participants", "", `{"name":"  "}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	roster, err := store.ListParticipants(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 1)
}

func TestGetParticipants(t *testing.T) {
	r, _ := newServer(t)
	joinRoom(t, r, "Alice")
	joinRoom(t, r, "Bob")

	w := do(t, r, http.MethodGet, "/participants", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var roster []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	require.Len(t, roster, 2)
	require.Equal(t, "Alice", roster[0]["name"])
}

func TestPostStatus(t *testing.T) {
	r, _ := newServer(t)
	joinRoom(t, r, "Alice")

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/status", "Alice", "").Code)
	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/status", "Bob", "").Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodPost, "/status", "", "").Code)
}

func TestPostMessages(t *testing.T) {
	r, _ := newServer(t)
	joinRoom(t, r, "Alice")

	w := do(t, r, http.MethodPost, "/messages", "Alice", `{"to":"Todos","text":"oi","type":"message"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID   string `json:"id"`
		Time string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, created.Time)

	// unknown sender
	w = do(t, r, http.MethodPost, "/messages", "Ghost", `{"to":"Todos","text":"boo","type":"message"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// bad type
	w = do(t, r, http.MethodPost, "/messages", "Alice", `{"to":"Todos","text":"oi","type":"status"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// missing fields
	w = do(t, r, http.MethodPost, "/messages", "Alice", `{"to":"Todos"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// missing header
	w = do(t, r, http.MethodPost, "/messages", "", `{"to":"Todos","text":"oi","type":"message"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func seedRoom(t *testing.T, r *gin.Engine) {
	t.Helper()
	joinRoom(t, r, "Alice")
	joinRoom(t, r, "Bob")
	joinRoom(t, r, "Carol")
	for _, m := range []struct{ user, body string }{
		{"Alice", `{"to":"Todos","text":"oi","type":"message"}`},
		{"Bob", `{"to":"Carol","text":"psst","type":"private_message"}`},
		{"Carol", `{"to":"Alice","text":"oi Alice","type":"private_message"}`},
	} {
		w := do(t, r, http.MethodPost, "/messages", m.user, m.body)
		require.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestGetMessages_VisibilityAndLimit(t *testing.T) {
	r, _ := newServer(t)
	seedRoom(t, r)

	w := do(t, r, http.MethodGet, "/messages", "Alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var msgs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	// 3 arrival notices + Alice's broadcast + Carol's private reply
	require.Len(t, msgs, 5)
	for _, m := range msgs {
		visible := m["to"] == "Alice" || m["to"] == chat.RecipientAll || m["from"] == "Alice"
		require.True(t, visible, "message %v leaked to Alice", m)
	}

	w = do(t, r, http.MethodGet, "/messages?limit=2", "Alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	msgs = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	require.Equal(t, "oi Alice", msgs[0]["text"])
	require.Equal(t, "oi", msgs[1]["text"])

	require.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/messages?limit=0", "Alice", "").Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/messages?limit=-2", "Alice", "").Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/messages?limit=two", "Alice", "").Code)
	require.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodGet, "/messages", "", "").Code)
}

func postMessage(t *testing.T, r *gin.Engine, user, body string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/messages", user, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID
}

func TestPutMessage_OwnershipGate(t *testing.T) {
	r, store := newServer(t)
	joinRoom(t, r, "Alice")
	joinRoom(t, r, "Bob")
	id := postMessage(t, r, "Alice", `{"to":"Bob","text":"oi","type":"private_message"}`)

	body := `{"to":"Bob","text":"oi de novo","type":"private_message"}`

	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/messages/nope", "Bob", body).Code)
	require.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPut, "/messages/"+id, "Bob", body).Code)

	m, err := store.FindMessageByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "oi", m.Text)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/messages/"+id, "Alice", body).Code)
	m, err = store.FindMessageByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "oi de novo", m.Text)
	require.Equal(t, "Alice", m.From)

	require.Equal(t, http.StatusUnprocessableEntity,
		do(t, r, http.MethodPut, "/messages/"+id, "Alice", `{"to":"Bob"}`).Code)
}

func TestDeleteMessage_OwnershipGate(t *testing.T) {
	r, store := newServer(t)
	joinRoom(t, r, "Alice")
	joinRoom(t, r, "Bob")
	id := postMessage(t, r, "Alice", `{"to":"Bob","text":"oi","type":"private_message"}`)

	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/messages/nope", "Alice", "").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodDelete, "/messages/"+id, "Bob", "").Code)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/messages/"+id, "Alice", "").Code)

	_, err := store.FindMessageByID(context.Background(), id)
	require.Error(t, err)

	require.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/messages/"+id, "Alice", "").Code)
}
