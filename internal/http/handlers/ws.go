package handlers

import (
	"net/http"

	"partner_cabinet/internal/logger"
	"partner_cabinet/internal/service"
	"partner_cabinet/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the API is served cross-origin from the cabinet frontend
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS upgrades the connection and subscribes the user to stats-ready events.
// The bearer token travels in the query string since browsers cannot set
// headers on websocket dials.
func (h *Handler) WS(c *gin.Context) {
	token := c.Query("token")
	userID, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "user_id", user.UserID, "error", err)
		return
	}

	client := ws.NewClient(h.Hub, conn, user.UserID)
	go client.Run()
}
