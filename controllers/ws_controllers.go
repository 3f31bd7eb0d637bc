package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/rota600-pos/hub"
	"github.com/yeremiapane/rota600-pos/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // displays connect from the LAN, no origin policy
	},
}

// WSHandler -> WebSocket endpoint for the displays. Every connection gets
// the current snapshot immediately and full-state pushes after each
// mutation until it drops. Reads the shared connection stored at boot.
func WSHandler(c *gin.Context) {
	db := utils.GetDB()
	if db == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	hub.RegisterClient(ws, db)

	// Displays only listen; drain until the connection dies.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	hub.UnregisterClient(ws)
}
