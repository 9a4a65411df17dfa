package controllers

import (
	"log/slog"
	"net/http"
	"slices"

	"mediguard-backend/models"
	"mediguard-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WebSocketController struct {
	chatbotService *services.ChatbotService
	upgrader       websocket.Upgrader
}

// NewWebSocketController accepts connections from allowedOrigins; an empty
// list or "*" allows any origin.
func NewWebSocketController(chatbotService *services.ChatbotService, allowedOrigins []string) *WebSocketController {
	return &WebSocketController{
		chatbotService: chatbotService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

type wsMessage struct {
	Message string `json:"message"`
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade error", "error", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("WebSocket read error", "session_id", sessionID, "error", err)
			}
			break
		}

		req := models.ChatRequest{
			Message:   msg.Message,
			SessionID: sessionID,
			Channel:   models.ChannelWebSocket,
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			if writeErr := conn.WriteJSON(gin.H{"error": "Failed to process message"}); writeErr != nil {
				break
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			slog.Warn("WebSocket write error", "session_id", sessionID, "error", err)
			break
		}
	}
}
