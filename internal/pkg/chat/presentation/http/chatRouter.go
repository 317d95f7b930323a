package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	cacheport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/cache/port"
	qport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/queue/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/realtime"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/presentation/controller"
)

// Deps bundles the collaborators the chat endpoints are wired with.
// Cache, Queue and Realtime are optional; nil disables the roster cache,
// the fan-out task and the websocket endpoint respectively.
type Deps struct {
	Store        port.Store
	Cache        cacheport.Cache
	Queue        qport.Client
	Realtime     *realtime.Router
	NoticeSender string
	RosterTTL    time.Duration
	Log          *slog.Logger
}

// RegisterRoutes registers all chat endpoints on the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	createCtl := controller.NewCreateParticipantController(deps.Store, deps.Cache, deps.NoticeSender)
	rosterCtl := controller.NewListParticipantsController(deps.Store, deps.Cache, deps.RosterTTL)
	statusCtl := controller.NewStatusController(deps.Store)
	postMsgCtl := controller.NewPostMessageController(deps.Store, deps.Queue, deps.Log)
	listMsgCtl := controller.NewListMessagesController(deps.Store)
	editMsgCtl := controller.NewEditMessageController(deps.Store)
	delMsgCtl := controller.NewDeleteMessageController(deps.Store)

	g.POST("/participants", createCtl.Handle())
	g.GET("/participants", rosterCtl.Handle())
	g.POST("/status", statusCtl.Handle())
	g.POST("/messages", postMsgCtl.Handle())
	g.GET("/messages", listMsgCtl.Handle())
	g.PUT("/messages/:id", editMsgCtl.Handle())
	g.DELETE("/messages/:id", delMsgCtl.Handle())

	if deps.Realtime != nil {
		socketCtl := controller.NewRoomSocketController(deps.Realtime)
		g.GET("/messages/ws", socketCtl.Handle())
	}
}
