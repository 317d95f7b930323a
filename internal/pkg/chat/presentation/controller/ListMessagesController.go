package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

// ListMessagesController returns the messages visible to the requester,
// optionally truncated to the newest `limit` entries.
type ListMessagesController struct {
	UC *usecase.ListMessagesUseCase
}

func NewListMessagesController(store port.Store) *ListMessagesController {
	return &ListMessagesController{UC: usecase.NewListMessagesUseCase(store)}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var limit *int
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "limit must be an integer"})
				return
			}
			limit = &n
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.ListMessagesInput{User: user, Limit: limit})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, messageView(m))
		}
		c.JSON(http.StatusOK, out)
	}
}
