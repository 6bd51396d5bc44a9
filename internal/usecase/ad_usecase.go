package usecase

import (
	"context"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
	"vyzioads/pkg/logger"
)

type AdUseCase struct {
	adRepo         repository.AdRepository
	userRepo       repository.UserRepository
	notificationUC *NotificationUseCase
}

func NewAdUseCase(
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
	notificationUC *NotificationUseCase,
) *AdUseCase {
	return &AdUseCase{
		adRepo:         adRepo,
		userRepo:       userRepo,
		notificationUC: notificationUC,
	}
}

type CreateAdInput struct {
	Title       string
	Description string
	City        string
	Price       float64
	Currency    string
}

func (uc *AdUseCase) CreateAd(ctx context.Context, sellerID int64, input CreateAdInput) (*entity.Ad, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}
	if !seller.IsSeller {
		return nil, errors.Forbidden("Only sellers can post ads", nil)
	}

	ad := &entity.Ad{
		UserID:      sellerID,
		Title:       input.Title,
		Description: input.Description,
		City:        input.City,
		Price:       input.Price,
		Currency:    input.Currency,
		Status:      entity.AdStatusDraft,
	}
	if err := uc.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (uc *AdUseCase) GetAd(ctx context.Context, id int64) (*entity.Ad, error) {
	return uc.adRepo.GetByID(ctx, id)
}

func (uc *AdUseCase) ListActiveAds(ctx context.Context, limit, offset int) ([]*entity.Ad, int64, error) {
	return uc.adRepo.ListActive(ctx, limit, offset)
}

func (uc *AdUseCase) ListSellerAds(ctx context.Context, sellerID int64) ([]*entity.Ad, error) {
	return uc.adRepo.ListBySeller(ctx, sellerID)
}

// InitiatePayment moves a draft ad into pending while the external gateway
// handles the actual charge.
func (uc *AdUseCase) InitiatePayment(ctx context.Context, adID int64) (*entity.Ad, error) {
	return uc.transition(ctx, adID, entity.AdStatusDraft, entity.AdStatusPending)
}

// ConfirmPayment activates a pending ad once the gateway reports success and
// records the payment on the seller's ledger.
func (uc *AdUseCase) ConfirmPayment(ctx context.Context, adID int64) (*entity.Ad, error) {
	ad, err := uc.transition(ctx, adID, entity.AdStatusPending, entity.AdStatusActive)
	if err != nil {
		return nil, err
	}

	seller, err := uc.userRepo.GetByID(ctx, ad.UserID)
	if err == nil {
		if nerr := uc.notificationUC.NotifyPaymentConfirmed(ctx, seller, ad); nerr != nil {
			logger.Warn("payment notification failed for ad %d: %v", ad.ID, nerr)
		}
	}
	return ad, nil
}

// Moderate approves or rejects a pending ad and notifies the seller either
// way.
func (uc *AdUseCase) Moderate(ctx context.Context, adID int64, approve bool) (*entity.Ad, error) {
	to := entity.AdStatusActive
	if !approve {
		to = entity.AdStatusArchived
	}

	ad, err := uc.transition(ctx, adID, entity.AdStatusPending, to)
	if err != nil {
		return nil, err
	}

	seller, err := uc.userRepo.GetByID(ctx, ad.UserID)
	if err == nil {
		if nerr := uc.notificationUC.NotifyAdModerated(ctx, seller, ad, approve); nerr != nil {
			logger.Warn("moderation notification failed for ad %d: %v", ad.ID, nerr)
		}
	}
	return ad, nil
}

// AttachHeaderImage is the second phase of the media flow: the upload
// happened at the external image host, only its URL lands on the ad. A
// persistence failure here never masks an upload failure or vice versa.
func (uc *AdUseCase) AttachHeaderImage(ctx context.Context, adID int64, url string) (*entity.Ad, error) {
	if err := uc.adRepo.SetHeaderImageURL(ctx, adID, url); err != nil {
		return nil, err
	}
	return uc.adRepo.GetByID(ctx, adID)
}

func (uc *AdUseCase) transition(ctx context.Context, adID int64, from, to entity.AdStatus) (*entity.Ad, error) {
	ad, err := uc.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.Status != from {
		return nil, errors.BadRequest("Ad is not in "+string(from)+" state", nil)
	}

	moved, err := uc.adRepo.UpdateStatus(ctx, adID, from, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Raced with another transition; re-read and report the actual state.
		return nil, errors.Conflict("Ad state changed concurrently")
	}

	ad.Status = to
	return ad, nil
}
