package router

import (
	"github.com/labstack/echo/v4"

	"barterhub/internal/adapter/api/handler"
	"barterhub/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", chatHandler.CreateChat)
	chats.GET("", chatHandler.ListChats)
	chats.DELETE("/:id", chatHandler.DeleteChat)

	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.GET("/:id/messages", chatHandler.GetMessages)
	chats.PUT("/:id/messages/:messageId", chatHandler.EditMessage)
	chats.DELETE("/:id/messages/:messageId", chatHandler.DeleteMessage)
}
