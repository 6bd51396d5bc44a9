package router

import (
	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/handler"
	"vyzioads/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	e.POST("/v1/chats/create", chatHandler.CreateChat)
	e.POST("/v1/messages/send", chatHandler.SendMessage)
	e.GET("/v1/chats/:id/messages", chatHandler.GetChatMessages)

	// Marking a chat read needs a verified identity; everything else keys
	// off explicit participant ids in the payload.
	e.POST("/v1/chats/:id/mark-read", chatHandler.MarkChatRead, authMiddleware.Authenticate)

	e.GET("/v1/buyer/:id/chats", chatHandler.GetBuyerChats)
	e.GET("/v1/seller/:id/chats", chatHandler.GetSellerChats)
}
