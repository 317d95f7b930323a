package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

// DeleteMessageController removes an owned message from the log.
type DeleteMessageController struct {
	UC *usecase.DeleteMessageUseCase
}

func NewDeleteMessageController(store port.Store) *DeleteMessageController {
	return &DeleteMessageController{UC: usecase.NewDeleteMessageUseCase(store)}
}

func (h *DeleteMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.DeleteMessageInput{ID: c.Param("id"), User: user})
		if err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}
