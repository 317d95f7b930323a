package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	qport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/queue/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/task"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

// PostMessageController persists a user message and enqueues the
// websocket fan-out as a best-effort background task.
type PostMessageController struct {
	UC  *usecase.PostMessageUseCase
	Q   qport.Client // optional; nil disables fan-out
	Log *slog.Logger
}

func NewPostMessageController(store port.Store, queue qport.Client, log *slog.Logger) *PostMessageController {
	return &PostMessageController{UC: usecase.NewPostMessageUseCase(store), Q: queue, Log: log}
}

type messageRequest struct {
	To   string `json:"to" binding:"required"`
	Text string `json:"text" binding:"required"`
	Type string `json:"type" binding:"required"`
}

func (h *PostMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req messageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.PostMessageInput{
			From: user,
			To:   req.To,
			Text: req.Text,
			Type: chat.MessageType(req.Type),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		h.enqueueFanout(ctx, *msg)

		c.JSON(http.StatusCreated, messageView(*msg))
	}
}

func (h *PostMessageController) enqueueFanout(ctx context.Context, msg chat.Message) {
	if h.Q == nil {
		return
	}
	t, err := task.NewBroadcastMessageTask(msg)
	if err != nil {
		h.Log.Warn("fan-out payload encode failed", "message", msg.ID, "err", err)
		return
	}
	opts := qport.EnqueueOption{Queue: "chat", MaxRetry: 5}
	if _, err := h.Q.Enqueue(ctx, t, opts); err != nil {
		// The message is persisted; polling clients still see it.
		h.Log.Warn("fan-out enqueue failed", "message", msg.ID, "err", err)
	}
}
