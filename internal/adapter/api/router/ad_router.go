package router

import (
	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/handler"
)

func SetupAdRouter(e *echo.Echo, adHandler *handler.AdHandler, trackingHandler *handler.TrackingHandler) {
	e.POST("/v1/ads", adHandler.CreateAd)
	e.GET("/v1/ads", adHandler.ListActiveAds)
	e.GET("/v1/ads/:id", adHandler.GetAd)
	e.GET("/v1/seller/:id/ads", adHandler.ListSellerAds)

	e.POST("/v1/ads/:id/initiate-payment", adHandler.InitiatePayment)
	e.POST("/v1/ads/:id/confirm-payment", adHandler.ConfirmPayment)
	e.POST("/v1/ads/:id/moderate", adHandler.ModerateAd)
	e.POST("/v1/ads/:id/header-image", adHandler.AttachHeaderImage)

	e.POST("/v1/ads/:id/view", trackingHandler.RecordView)
	e.POST("/v1/ads/:id/save", trackingHandler.SaveAd)
	e.DELETE("/v1/ads/:id/save", trackingHandler.UnsaveAd)
	e.GET("/v1/ads/:id/view-history", trackingHandler.ListAdViewHistory)
}
