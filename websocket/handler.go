package websocket

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TokenValidator validates a JWT string and returns the user ID it carries.
// Wired to utils.ParseClaims in main to avoid an import cycle.
type TokenValidator func(token string) (string, error)

// HandleWebSocket upgrades the connection and registers the client. Clients
// authenticate by sending "AUTH:<jwt>" as their first message.
func HandleWebSocket(c echo.Context, hub *Hub, validate TokenValidator) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		Conn:          conn,
		Authenticated: false,
	}

	hub.Register(client)

	conn.WriteJSON(Event{
		Type:    "connected",
		Message: "WebSocket connection established. Please authenticate to receive dashboard events.",
	})

	// Handle messages and disconnection
	go func() {
		defer func() {
			hub.Unregister(client)
		}()

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				break
			}

			if messageType != websocket.TextMessage {
				continue
			}

			messageStr := string(message)
			if !strings.HasPrefix(messageStr, "AUTH:") {
				continue
			}

			token := strings.TrimPrefix(messageStr, "AUTH:")
			userID, err := validate(token)
			if err != nil {
				conn.WriteJSON(Event{
					Type:    "auth_response",
					Message: "Authentication failed: " + err.Error(),
				})
				continue
			}

			hub.Authenticate(client, userID)

			conn.WriteJSON(Event{
				Type:    "auth_response",
				Message: "Authentication successful",
				UserID:  userID,
			})
		}
	}()

	return nil
}
