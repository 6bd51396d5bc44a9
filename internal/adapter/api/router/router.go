package router

import (
	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/handler"
	"vyzioads/internal/adapter/api/middleware"
)

type Handlers struct {
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Tracking     *handler.TrackingHandler
	Ad           *handler.AdHandler
	Health       *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupNotificationRouter(e, h.Notification)
	SetupTrackingRouter(e, h.Tracking, authMiddleware)
	SetupAdRouter(e, h.Ad, h.Tracking)
	SetupHealthRouter(e, h.Health)
}

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/health", healthHandler.CheckHealth)
}
