package repository

import (
	"context"

	"vyzioads/internal/domain/entity"
)

type AdRepository interface {
	Create(ctx context.Context, ad *entity.Ad) error
	GetByID(ctx context.Context, id int64) (*entity.Ad, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Ad, int64, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Ad, error)

	// UpdateStatus transitions an ad between lifecycle states. It reports
	// whether a row in the expected source state was actually updated.
	UpdateStatus(ctx context.Context, id int64, from, to entity.AdStatus) (bool, error)

	// SetHeaderImageURL is the second phase of the media attach flow: the
	// upload happened elsewhere, only the URL lands here.
	SetHeaderImageURL(ctx context.Context, id int64, url string) error
}
