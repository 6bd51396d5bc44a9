package router

import (
	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/handler"
	"vyzioads/internal/adapter/api/middleware"
)

func SetupTrackingRouter(e *echo.Echo, trackingHandler *handler.TrackingHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/v1/buyer/:id/saved-ads", trackingHandler.ListSavedAds)
	e.GET("/v1/buyer/:id/view-history", trackingHandler.ListViewHistory)
	e.GET("/v1/buyer/:id/dashboard", trackingHandler.BuyerDashboard, authMiddleware.Authenticate)
}
