package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

// StatusController handles the heartbeat endpoint.
type StatusController struct {
	UC *usecase.HeartbeatUseCase
}

func NewStatusController(store port.Store) *StatusController {
	return &StatusController{UC: usecase.NewHeartbeatUseCase(store)}
}

func (h *StatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, usecase.HeartbeatInput{Name: user}); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}
