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

// CreateParticipantController handles the join endpoint only (one
// controller per endpoint).
type CreateParticipantController struct {
	UC *usecase.RegisterParticipantUseCase
}

func NewCreateParticipantController(store port.Store, cache cacheport.Cache, noticeSender string) *CreateParticipantController {
	uc := usecase.NewRegisterParticipantUseCase(store)
	uc.Cache = cache
	uc.NoticeSender = noticeSender
	return &CreateParticipantController{UC: uc}
}

type createParticipantRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CreateParticipantController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createParticipantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		p, err := h.UC.Execute(ctx, usecase.RegisterParticipantInput{Name: req.Name})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, participantView(*p))
	}
}
