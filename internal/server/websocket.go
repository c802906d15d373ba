package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var spectatorUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectator connections are read-only; accept any origin the way the
	// teacher's client-only websocket usage never needed to restrict it.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Spectate upgrades the connection and streams the match's GameEvents as
// JSON text frames until the client disconnects or the match's event
// subscription ends.
// GET /matches/:id/ws
func (h *EchoHandler) Spectate(c echo.Context) error {
	matchID := c.Param("id")

	conn, err := spectatorUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "websocket upgrade failed")
	}
	defer conn.Close()

	sub, events := h.ctrl.SubscribeToMatch(matchID)
	defer sub.Unsubscribe()

	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Printf("server: failed to encode spectator event: %v", err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return nil
		}
	}
	return nil
}
