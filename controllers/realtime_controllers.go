package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/ambatoeat-api/middlewares"
	"github.com/yeremiapane/ambatoeat-api/realtime"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type RealtimeController struct {
	Hub *realtime.Hub
}

func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

// Stream -> websocket feed of reservation and table events
func (rc *RealtimeController) Stream(c *gin.Context) {
	id, _ := middlewares.GetIdentity(c)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("websocket upgrade: %v", err)
		return
	}

	rc.Hub.RegisterClient(ws, id.UserID)
	utils.InfoLogger.Printf("Realtime client connected: user %d", id.UserID)

	// drain until the client goes away
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	rc.Hub.UnregisterClient(ws)
}
