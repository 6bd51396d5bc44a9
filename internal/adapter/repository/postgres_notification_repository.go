package repository

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
)

type postgresNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresNotificationRepository(pool *pgxpool.Pool) repository.NotificationRepository {
	return &postgresNotificationRepository{pool: pool}
}

func (r *postgresNotificationRepository) CreateBuyer(ctx context.Context, n *entity.BuyerNotification) error {
	if n.Type == "" {
		n.Type = entity.NotificationMessage
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO buyer_notifications
		 (buyer_id, notification_type, header, message, is_read, ad_id, seller_id, seller_name, seller_avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, timestamp`,
		n.BuyerID, n.Type, n.Header, n.Message, n.IsRead,
		n.AdID, n.SellerID, n.SellerName, n.SellerAvatarURL,
	).Scan(&n.ID, &n.Timestamp)
	if err != nil {
		return errors.Internal("Failed to create buyer notification", err)
	}
	return nil
}

func (r *postgresNotificationRepository) CreateSeller(ctx context.Context, n *entity.SellerNotification) error {
	if n.Type == "" {
		n.Type = entity.NotificationMessage
	}
	if n.Currency == "" {
		n.Currency = "USD"
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO seller_notifications
		 (seller_id, notification_type, header, message, is_read, ad_id,
		  order_id, order_status, order_total, buyer_id, buyer_name, buyer_avatar_url, currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, timestamp`,
		n.SellerID, n.Type, n.Header, n.Message, n.IsRead, n.AdID,
		n.OrderID, n.OrderStatus, n.OrderTotal, n.BuyerID, n.BuyerName, n.BuyerAvatarURL, n.Currency,
	).Scan(&n.ID, &n.Timestamp)
	if err != nil {
		return errors.Internal("Failed to create seller notification", err)
	}
	return nil
}

func (r *postgresNotificationRepository) ListBuyer(ctx context.Context, buyerID int64) ([]*entity.BuyerNotification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, buyer_id, notification_type, header, message, is_read, timestamp,
		        ad_id, seller_id, seller_name, seller_avatar_url
		 FROM buyer_notifications WHERE buyer_id = $1 ORDER BY timestamp DESC`, buyerID)
	if err != nil {
		return nil, errors.Internal("Failed to list buyer notifications", err)
	}
	defer rows.Close()

	var list []*entity.BuyerNotification
	for rows.Next() {
		var n entity.BuyerNotification
		if err := rows.Scan(&n.ID, &n.BuyerID, &n.Type, &n.Header, &n.Message, &n.IsRead,
			&n.Timestamp, &n.AdID, &n.SellerID, &n.SellerName, &n.SellerAvatarURL); err != nil {
			return nil, errors.Internal("Failed to scan buyer notification", err)
		}
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate buyer notifications", err)
	}
	return list, nil
}

func (r *postgresNotificationRepository) ListSeller(ctx context.Context, sellerID int64) ([]*entity.SellerNotification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, seller_id, notification_type, header, message, is_read, timestamp,
		        ad_id, order_id, order_status, order_total, buyer_id, buyer_name, buyer_avatar_url, currency
		 FROM seller_notifications WHERE seller_id = $1 ORDER BY timestamp DESC`, sellerID)
	if err != nil {
		return nil, errors.Internal("Failed to list seller notifications", err)
	}
	defer rows.Close()

	var list []*entity.SellerNotification
	for rows.Next() {
		var n entity.SellerNotification
		if err := rows.Scan(&n.ID, &n.SellerID, &n.Type, &n.Header, &n.Message, &n.IsRead,
			&n.Timestamp, &n.AdID, &n.OrderID, &n.OrderStatus, &n.OrderTotal,
			&n.BuyerID, &n.BuyerName, &n.BuyerAvatarURL, &n.Currency); err != nil {
			return nil, errors.Internal("Failed to scan seller notification", err)
		}
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate seller notifications", err)
	}
	return list, nil
}

func notificationTable(audience entity.Audience) (table, recipientColumn string) {
	if audience == entity.AudienceBuyer {
		return "buyer_notifications", "buyer_id"
	}
	return "seller_notifications", "seller_id"
}

// MarkRead only reports flipped=true on the actual unread-to-read
// transition, which keeps the downstream mirror decrement idempotent.
func (r *postgresNotificationRepository) MarkRead(ctx context.Context, audience entity.Audience, id int64) (int64, bool, error) {
	table, recipient := notificationTable(audience)

	var recipientID int64
	err := r.pool.QueryRow(ctx,
		`UPDATE `+table+` SET is_read = TRUE WHERE id = $1 AND is_read = FALSE RETURNING `+recipient,
		id,
	).Scan(&recipientID)
	if err == nil {
		return recipientID, true, nil
	}
	if !stderrors.Is(err, pgx.ErrNoRows) {
		return 0, false, errors.Internal("Failed to mark notification read", err)
	}

	// Already read, or absent. Distinguish so the caller can 404 the latter.
	err = r.pool.QueryRow(ctx,
		`SELECT `+recipient+` FROM `+table+` WHERE id = $1`, id,
	).Scan(&recipientID)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return 0, false, errors.NotFound("Notification", err)
		}
		return 0, false, errors.Internal("Failed to load notification", err)
	}
	return recipientID, false, nil
}

func (r *postgresNotificationRepository) Delete(ctx context.Context, audience entity.Audience, id int64) (int64, bool, error) {
	table, recipient := notificationTable(audience)

	var recipientID int64
	var wasUnread bool
	err := r.pool.QueryRow(ctx,
		`DELETE FROM `+table+` WHERE id = $1 RETURNING `+recipient+`, NOT is_read`,
		id,
	).Scan(&recipientID, &wasUnread)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return 0, false, errors.NotFound("Notification", err)
		}
		return 0, false, errors.Internal("Failed to delete notification", err)
	}
	return recipientID, wasUnread, nil
}
