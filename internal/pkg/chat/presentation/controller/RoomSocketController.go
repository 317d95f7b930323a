package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/realtime"
)

// RoomSocketController handles the websocket endpoint. The stream is
// receive-only: clients post over HTTP and get new room traffic pushed
// here, filtered by the same visibility rule as GET /messages.
type RoomSocketController struct {
	router *realtime.Router
}

func NewRoomSocketController(router *realtime.Router) *RoomSocketController {
	return &RoomSocketController{router: router}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same open-origin policy as the CORS layer.
		return true
	},
}

const socketReadTimeout = 60 * time.Second

func (ctl *RoomSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.Query("user")
		if user == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user is required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(user, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		})

		// Drain inbound frames to keep control handlers running; any
		// read error ends the session.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}
}
