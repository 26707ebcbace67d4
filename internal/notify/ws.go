package notify

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard may be served from another origin in dev
	},
}

// WSHandler streams every toast to the connected client as a JSON text
// message.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		// written before AddWS so it never races with Show
		_ = ws.WriteMessage(
			websocket.TextMessage,
			[]byte(`{"type":"welcome","transport":"websocket"}`),
		)
		hub.AddWS(ws)
		hub.log.Debug().Str("remote", c.Request.RemoteAddr).Msg("ws client connected")

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		hub.log.Debug().Str("remote", c.Request.RemoteAddr).Msg("ws client disconnected")
	}
}

// RecentHandler serves GET /notifications?limit=N.
func RecentHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": hub.Recent(limit)})
	}
}
