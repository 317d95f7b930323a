package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpHandler "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/presentation/http"
)

// New builds the gin engine with CORS, a health probe and the chat
// endpoints mounted at the root, matching the paths the original
// clients use.
func New(deps httpHandler.Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	httpHandler.RegisterRoutes(r.Group("/"), deps)
	return r
}
