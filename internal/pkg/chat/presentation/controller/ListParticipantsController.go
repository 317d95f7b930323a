package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cacheport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/cache/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

// ListParticipantsController returns the active roster.
type ListParticipantsController struct {
	UC *usecase.ListParticipantsUseCase
}

func NewListParticipantsController(store port.Store, cache cacheport.Cache, rosterTTL time.Duration) *ListParticipantsController {
	uc := usecase.NewListParticipantsUseCase(store)
	uc.Cache = cache
	if rosterTTL > 0 {
		uc.TTL = rosterTTL
	}
	return &ListParticipantsController{UC: uc}
}

func (h *ListParticipantsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		roster, err := h.UC.Execute(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(roster))
		for _, p := range roster {
			out = append(out, participantView(p))
		}
		c.JSON(http.StatusOK, out)
	}
}
