package server

import (
	"log"

	"alumnihub/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler returns a websocket handler that registers connections with the Hub.
// Clients only receive events; anything they send is discarded.
// @Summary Live notifications
// @Description Upgrade to a websocket that streams activity, application and community events
// @Tags realtime
// @Param token query string false "JWT when the Authorization header cannot be set"
// @Success 101
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /ws [get]
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		uid, ok := conn.Locals("userID").(uint)
		if !ok || uid == 0 {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket Notification: Failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"`+err.Error()+`","error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)

		if hello, err := notifications.Encode(notifications.EventConnected, fiber.Map{"userId": uid}); err == nil {
			client.TrySend([]byte(hello))
		}

		go client.WritePump()
		client.ReadPump()
	})
}
