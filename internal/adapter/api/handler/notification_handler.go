package handler

import (
	"github.com/labstack/echo/v4"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/usecase"
	"vyzioads/pkg/errors"
	"vyzioads/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase}
}

func (h *NotificationHandler) ListBuyerNotifications(c echo.Context) error {
	buyerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	notifications, err := h.notificationUseCase.ListBuyer(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notifications)
}

func (h *NotificationHandler) ListSellerNotifications(c echo.Context) error {
	sellerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	notifications, err := h.notificationUseCase.ListSeller(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notifications)
}

func (h *NotificationHandler) MarkBuyerNotificationRead(c echo.Context) error {
	return h.markRead(c, entity.AudienceBuyer)
}

func (h *NotificationHandler) MarkSellerNotificationRead(c echo.Context) error {
	return h.markRead(c, entity.AudienceSeller)
}

func (h *NotificationHandler) markRead(c echo.Context, audience entity.Audience) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), audience, id); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"detail": "Marked as read"})
}

func (h *NotificationHandler) DeleteBuyerNotification(c echo.Context) error {
	return h.delete(c, entity.AudienceBuyer)
}

func (h *NotificationHandler) DeleteSellerNotification(c echo.Context) error {
	return h.delete(c, entity.AudienceSeller)
}

func (h *NotificationHandler) delete(c echo.Context, audience entity.Audience) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.notificationUseCase.Delete(c.Request().Context(), audience, id); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}

type welcomeRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// Welcome is the identity service's signup hook: it seeds the new user's
// ledger with a greeting.
func (h *NotificationHandler) Welcome(c echo.Context) error {
	var req welcomeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.notificationUseCase.NotifyWelcome(c.Request().Context(), req.UserID); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, map[string]bool{"success": true})
}
