package repository

import (
	"context"
	"time"

	"vyzioads/internal/domain/entity"
)

// DashboardCounts aggregates a buyer's tracking activity.
type DashboardCounts struct {
	SavedAds       int64 `json:"saved_ads"`
	ViewedAds      int64 `json:"viewed_ads"`
	ActiveChats    int64 `json:"active_chats"`
	UnreadMessages int64 `json:"unread_messages"`
}

type TrackingRepository interface {
	// HasRecentView reports whether a view for (user, ad) exists at or after
	// since.
	HasRecentView(ctx context.Context, userID, adID int64, since time.Time) (bool, error)
	CreateView(ctx context.Context, v *entity.ViewHistory) error
	ListViewsByUser(ctx context.Context, userID int64, limit int) ([]*entity.ViewHistory, error)
	ListViewsByAd(ctx context.Context, adID int64, limit int) ([]*entity.ViewHistory, error)

	// SaveAd inserts the bookmark unless it already exists; created=false
	// means the (user, ad) row was already there.
	SaveAd(ctx context.Context, s *entity.SavedAd) (created bool, err error)
	// UnsaveAd removes the bookmark, reporting whether a row existed.
	UnsaveAd(ctx context.Context, userID, adID int64) (removed bool, err error)
	ListSavedByUser(ctx context.Context, userID int64) ([]*entity.SavedAd, error)

	DashboardCounts(ctx context.Context, userID int64) (*DashboardCounts, error)
}
