package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/middleware"
	"vyzioads/internal/usecase"
	"vyzioads/pkg/errors"
	"vyzioads/pkg/response"
)

type TrackingHandler struct {
	trackingUseCase *usecase.TrackingUseCase
}

func NewTrackingHandler(trackingUseCase *usecase.TrackingUseCase) *TrackingHandler {
	return &TrackingHandler{trackingUseCase: trackingUseCase}
}

type trackingRequest struct {
	UserID int64 `json:"user_id"`
}

// resolveUserID prefers the authenticated user, falling back to an explicit
// user_id in the body or query string for anonymous-capable endpoints.
func resolveUserID(c echo.Context) (int64, error) {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID, nil
	}

	var req trackingRequest
	if err := c.Bind(&req); err == nil && req.UserID > 0 {
		return req.UserID, nil
	}
	if raw := c.QueryParam("user_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, errors.BadRequest("Authentication required or provide user_id", nil)
}

// RecordView logs an ad view; a repeat inside the dedupe window answers 204
// without writing.
func (h *TrackingHandler) RecordView(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := resolveUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	view, err := h.trackingUseCase.RecordView(c.Request().Context(), userID, adID)
	if err != nil {
		return response.Error(c, err)
	}
	if view == nil {
		return response.NoContent(c)
	}
	return response.Created(c, view)
}

// SaveAd bookmarks; saving an already-saved ad is success with a 200, not a
// conflict.
func (h *TrackingHandler) SaveAd(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := resolveUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	saved, created, err := h.trackingUseCase.SaveAd(c.Request().Context(), userID, adID)
	if err != nil {
		return response.Error(c, err)
	}
	if !created {
		return response.Success(c, map[string]string{"detail": "Already saved"})
	}
	return response.Created(c, saved)
}

func (h *TrackingHandler) UnsaveAd(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := resolveUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	removed, err := h.trackingUseCase.UnsaveAd(c.Request().Context(), userID, adID)
	if err != nil {
		return response.Error(c, err)
	}
	if !removed {
		return response.Error(c, errors.NotFound("Saved ad", nil))
	}
	return response.NoContent(c)
}

func (h *TrackingHandler) ListSavedAds(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	saved, err := h.trackingUseCase.ListSavedAds(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, saved)
}

func (h *TrackingHandler) ListViewHistory(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	views, err := h.trackingUseCase.ListViewHistory(c.Request().Context(), userID, limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, views)
}

func (h *TrackingHandler) ListAdViewHistory(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	views, err := h.trackingUseCase.ListAdViewHistory(c.Request().Context(), adID, limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, views)
}

func (h *TrackingHandler) BuyerDashboard(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	counts, err := h.trackingUseCase.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, counts)
}
