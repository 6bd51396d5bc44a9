package usecase

import (
	"context"
	"time"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
)

// ViewDedupeWindow suppresses repeat view records for the same (user, ad)
// pair, bounding analytics noise from rapid refreshes.
const ViewDedupeWindow = 5 * time.Minute

type TrackingUseCase struct {
	trackingRepo repository.TrackingRepository
	adRepo       repository.AdRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

func NewTrackingUseCase(
	trackingRepo repository.TrackingRepository,
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
) *TrackingUseCase {
	return &TrackingUseCase{
		trackingRepo: trackingRepo,
		adRepo:       adRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// RecordView appends a view record unless one exists for the pair inside the
// trailing dedupe window. A suppressed view is a distinct no-op outcome, not
// an error: view == nil with a nil error.
func (uc *TrackingUseCase) RecordView(ctx context.Context, userID, adID int64) (*entity.ViewHistory, error) {
	if _, err := uc.adRepo.GetByID(ctx, adID); err != nil {
		return nil, errors.NotFound("Ad", err)
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	since := uc.now().Add(-ViewDedupeWindow)
	recent, err := uc.trackingRepo.HasRecentView(ctx, userID, adID, since)
	if err != nil {
		return nil, err
	}
	if recent {
		return nil, nil
	}

	view := &entity.ViewHistory{UserID: userID, AdID: adID}
	if err := uc.trackingRepo.CreateView(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

// SaveAd bookmarks the ad. A duplicate save is success, not an error: the
// unique constraint arbitrates concurrent creates and the loser reports
// created=false against the surviving row.
func (uc *TrackingUseCase) SaveAd(ctx context.Context, userID, adID int64) (*entity.SavedAd, bool, error) {
	if _, err := uc.adRepo.GetByID(ctx, adID); err != nil {
		return nil, false, errors.NotFound("Ad", err)
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, false, errors.NotFound("User", err)
	}

	saved := &entity.SavedAd{UserID: userID, AdID: adID}
	created, err := uc.trackingRepo.SaveAd(ctx, saved)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return nil, false, nil
	}
	return saved, true, nil
}

// UnsaveAd removes the bookmark, reporting whether one existed.
func (uc *TrackingUseCase) UnsaveAd(ctx context.Context, userID, adID int64) (bool, error) {
	return uc.trackingRepo.UnsaveAd(ctx, userID, adID)
}

func (uc *TrackingUseCase) ListSavedAds(ctx context.Context, userID int64) ([]*entity.SavedAd, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}
	return uc.trackingRepo.ListSavedByUser(ctx, userID)
}

func (uc *TrackingUseCase) ListViewHistory(ctx context.Context, userID int64, limit int) ([]*entity.ViewHistory, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return uc.trackingRepo.ListViewsByUser(ctx, userID, limit)
}

// ListAdViewHistory feeds seller analytics for a single ad.
func (uc *TrackingUseCase) ListAdViewHistory(ctx context.Context, adID int64, limit int) ([]*entity.ViewHistory, error) {
	if _, err := uc.adRepo.GetByID(ctx, adID); err != nil {
		return nil, errors.NotFound("Ad", err)
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return uc.trackingRepo.ListViewsByAd(ctx, adID, limit)
}

func (uc *TrackingUseCase) Dashboard(ctx context.Context, userID int64) (*repository.DashboardCounts, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}
	return uc.trackingRepo.DashboardCounts(ctx, userID)
}
