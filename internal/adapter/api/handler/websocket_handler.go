package handler

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	ws "barterhub/internal/infrastructure/websocket"
	"barterhub/pkg/errors"
	"barterhub/pkg/response"
)

type WebSocketHandler struct {
	wsManager  *ws.Manager
	authClient *auth.Client
}

func NewWebSocketHandler(wsManager *ws.Manager, authClient *auth.Client) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:  wsManager,
		authClient: authClient,
	}
}

// HandleWebSocket authenticates via the token query parameter because
// browsers cannot set headers on websocket handshakes.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	decoded, err := h.authClient.VerifyIDToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	if err := h.wsManager.HandleConnection(c.Response(), c.Request(), decoded.UID); err != nil {
		return response.Error(c, errors.Internal("Failed to upgrade connection", err))
	}

	return nil
}
