package repository

import (
	"context"

	"vyzioads/internal/domain/entity"
)

type NotificationRepository interface {
	CreateBuyer(ctx context.Context, n *entity.BuyerNotification) error
	CreateSeller(ctx context.Context, n *entity.SellerNotification) error

	ListBuyer(ctx context.Context, buyerID int64) ([]*entity.BuyerNotification, error)
	ListSeller(ctx context.Context, sellerID int64) ([]*entity.SellerNotification, error)

	// MarkRead flips is_read on the row. It reports the recipient id and
	// whether the row actually transitioned from unread to read; marking an
	// already-read row is a no-op with flipped=false.
	MarkRead(ctx context.Context, audience entity.Audience, id int64) (recipientID int64, flipped bool, err error)

	// Delete removes the row, reporting the recipient and whether the row was
	// still unread at deletion time.
	Delete(ctx context.Context, audience entity.Audience, id int64) (recipientID int64, wasUnread bool, err error)
}
