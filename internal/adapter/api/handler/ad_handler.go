package handler

import (
	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/middleware"
	"vyzioads/internal/usecase"
	"vyzioads/pkg/errors"
	"vyzioads/pkg/response"
	"vyzioads/pkg/utils"
)

type AdHandler struct {
	adUseCase *usecase.AdUseCase
}

func NewAdHandler(adUseCase *usecase.AdUseCase) *AdHandler {
	return &AdHandler{adUseCase: adUseCase}
}

type createAdRequest struct {
	SellerID    int64   `json:"seller_id"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
}

type attachHeaderImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type moderateAdRequest struct {
	Approve bool `json:"approve"`
}

func (h *AdHandler) CreateAd(c echo.Context) error {
	var req createAdRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := req.SellerID
	if user := middleware.CurrentUser(c); user != nil {
		sellerID = user.ID
	}
	if sellerID <= 0 {
		return response.Error(c, errors.BadRequest("seller_id is required", nil))
	}

	ad, err := h.adUseCase.CreateAd(c.Request().Context(), sellerID, usecase.CreateAdInput{
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Price:       req.Price,
		Currency:    req.Currency,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, ad)
}

func (h *AdHandler) GetAd(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	ad, err := h.adUseCase.GetAd(c.Request().Context(), adID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ad)
}

func (h *AdHandler) ListActiveAds(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	ads, total, err := h.adUseCase.ListActiveAds(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"items": ads,
		"total": total,
		"page":  params.Page,
		"limit": params.PageSize,
	})
}

func (h *AdHandler) ListSellerAds(c echo.Context) error {
	sellerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	ads, err := h.adUseCase.ListSellerAds(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ads)
}

func (h *AdHandler) InitiatePayment(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	ad, err := h.adUseCase.InitiatePayment(c.Request().Context(), adID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ad)
}

func (h *AdHandler) ConfirmPayment(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	ad, err := h.adUseCase.ConfirmPayment(c.Request().Context(), adID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ad)
}

func (h *AdHandler) ModerateAd(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req moderateAdRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}

	ad, err := h.adUseCase.Moderate(c.Request().Context(), adID, req.Approve)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ad)
}

// AttachHeaderImage binds an already-uploaded image URL to the ad. Upload
// itself happens elsewhere; this endpoint only records the final location.
func (h *AdHandler) AttachHeaderImage(c echo.Context) error {
	adID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req attachHeaderImageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request payload", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ad, err := h.adUseCase.AttachHeaderImage(c.Request().Context(), adID, req.URL)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, ad)
}
