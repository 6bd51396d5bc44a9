package router

import (
	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/handler"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler) {
	e.GET("/v1/buyer/:id/notifications", notificationHandler.ListBuyerNotifications)
	e.PATCH("/v1/buyer/notifications/:id/mark-read", notificationHandler.MarkBuyerNotificationRead)
	e.DELETE("/v1/buyer/notifications/:id", notificationHandler.DeleteBuyerNotification)

	e.GET("/v1/seller/:id/notifications", notificationHandler.ListSellerNotifications)
	e.PATCH("/v1/seller/notifications/:id/mark-read", notificationHandler.MarkSellerNotificationRead)
	e.DELETE("/v1/seller/notifications/:id", notificationHandler.DeleteSellerNotification)

	e.POST("/v1/notifications/welcome", notificationHandler.Welcome)
}
