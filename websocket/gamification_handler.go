package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// Game clients connect from any origin, same as the REST API.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades GET /ws to a game event stream. The optional user_id query
// parameter restricts the stream to one player's events.
func (h *Hub) Handler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	h.serve(newGameClient(conn, c.Query("user_id")))
}

// serve registers client and runs it until its connection drops
func (h *Hub) serve(client *GameClient) {
	h.Register(client)
	defer h.Unregister(client)

	err := client.SafeWriteJSON(gin.H{
		"type":    "connected",
		"message": "Connected to game updates",
		"userId":  client.UserID,
	})
	if err != nil {
		log.Printf("Error greeting game client: %v", err)
		return
	}
	go h.writePump(client)

	// Reading is only needed to notice disconnects; control frames are
	// answered by the library.
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Game WebSocket error: %v", err)
			}
			return
		}
	}
}
