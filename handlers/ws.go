package handlers

import (
	"quickcourt/middleware"
	"quickcourt/models"
	"quickcourt/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler upgrades authenticated callers onto the notification hub.
type WSHandler struct {
	Hub      *notification.Hub
	Upgrader websocket.Upgrader
}

func NewWSHandler(hub *notification.Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{Hub: hub, Upgrader: notification.Upgrader(allowedOrigins)}
}

// Serve joins the caller's user room and role room.
func (h *WSHandler) Serve(c *gin.Context) {
	userID := middleware.UserID(c)
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		getLogger(c).Warn("websocket upgrade failed", zap.String("userID", userID), zap.Error(err))
		return
	}
	rooms := []string{models.UserRoom(userID), models.RoleRoom(middleware.Role(c))}
	h.Hub.Attach(conn, rooms)
	getLogger(c).Debug("websocket attached", zap.String("userID", userID), zap.Strings("rooms", rooms))
}
