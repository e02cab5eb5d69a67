package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/relief_coordination_system/internal/notification"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Токен уже проверен middleware, origin не ограничивается
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Subscribe to real-time events
// @Description Upgrade the connection to websocket and stream events addressed to the current user, their role, or everyone. Pass the JWT via the token query parameter.
// @Tags Events
// @Security BearerAuth
// @Param token query string true "JWT token"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /ws [get]
func (h *Handler) serveWebsocket(c *gin.Context) {
	actor := actorFromContext(c)
	log := h.logger.WithField("method", "serveWebsocket").WithField("user_id", actor.ID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	client := notification.NewClient(actor.ID, actor.Role, conn)
	h.hub.Register(client)
	go client.WritePump()

	// Входящие сообщения не обрабатываются; чтение нужно только чтобы
	// заметить закрытие соединения
	go func() {
		defer h.hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
