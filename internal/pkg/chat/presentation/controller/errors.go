package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/usecase"
)

// respondError maps domain and use case sentinels onto the HTTP error
// taxonomy: validation 422, conflict 409, not-found 404, ownership 401,
// anything else (storage included) 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, chat.ErrInvalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, chat.ErrNameTaken):
		status = http.StatusConflict
	case errors.Is(err, chat.ErrParticipantNotFound), errors.Is(err, chat.ErrMessageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, chat.ErrNotOwner):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrPersistence):
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUser reads the identity header shared by the message and status
// endpoints. A missing header is a validation failure.
func requireUser(c *gin.Context) (string, bool) {
	user := c.GetHeader("User")
	if user == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user header is required"})
		return "", false
	}
	return user, true
}
