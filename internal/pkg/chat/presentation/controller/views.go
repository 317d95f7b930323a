package controller

import (
	"github.com/gin-gonic/gin"

	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// participantView serializes a participant the way the original clients
// expect it: lastStatus as unix milliseconds.
func participantView(p chat.Participant) gin.H {
	return gin.H{
		"id":         p.ID,
		"name":       p.Name,
		"lastStatus": p.LastStatus.UnixMilli(),
	}
}

func messageView(m chat.Message) gin.H {
	return gin.H{
		"id":   m.ID,
		"from": m.From,
		"to":   m.To,
		"text": m.Text,
		"type": m.Type,
		"time": m.Time,
	}
}
