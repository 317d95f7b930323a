package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

// EditMessageController rewrites the text of an owned message.
type EditMessageController struct {
	UC *usecase.EditMessageUseCase
}

func NewEditMessageController(store port.Store) *EditMessageController {
	return &EditMessageController{UC: usecase.NewEditMessageUseCase(store)}
}

func (h *EditMessageController) Handle() gin.HandlerFunc {
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

		err := h.UC.Execute(ctx, usecase.EditMessageInput{
			ID:   c.Param("id"),
			User: user,
			To:   req.To,
			Text: req.Text,
			Type: chat.MessageType(req.Type),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}
