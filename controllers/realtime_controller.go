package controllers

import (
	"net/http"

	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RealtimeSocket upgrades the connection; the socket receives analysis
// and goal events pushed by the hub.
func RealtimeSocket(c *gin.Context) {
	userID := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	hub.Register(client)

	// Reader loop only detects disconnects; clients don't send.
	go func() {
		defer hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
