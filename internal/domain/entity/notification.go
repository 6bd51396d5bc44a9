package entity

import "time"

type NotificationType string

const (
	NotificationMessage        NotificationType = "message"
	NotificationPayment        NotificationType = "payment"
	NotificationNewOrder       NotificationType = "new_order"
	NotificationOrderShipped   NotificationType = "order_shipped"
	NotificationOrderDelivered NotificationType = "order_delivered"
	NotificationOrderCancelled NotificationType = "order_cancelled"
	NotificationAdApproved     NotificationType = "ad_approved"
	NotificationAdRejected     NotificationType = "ad_rejected"
)

// Audience selects which side of the marketplace a notification ledger row
// belongs to.
type Audience string

const (
	AudienceBuyer  Audience = "buyer"
	AudienceSeller Audience = "seller"
)

// BuyerNotification is an append-only ledger row for a buyer. Snapshot fields
// are denormalized at write time so reads need no joins.
type BuyerNotification struct {
	ID              int64            `json:"id"`
	BuyerID         int64            `json:"buyer_id"`
	Type            NotificationType `json:"notification_type"`
	Header          string           `json:"header,omitempty"`
	Message         string           `json:"message,omitempty"`
	IsRead          bool             `json:"is_read"`
	Timestamp       time.Time        `json:"timestamp"`
	AdID            int64            `json:"ad_id,omitempty"`
	SellerID        int64            `json:"seller_id,omitempty"`
	SellerName      string           `json:"seller_name,omitempty"`
	SellerAvatarURL string           `json:"seller_avatar_url,omitempty"`
}

// SellerNotification is the seller-side ledger row. It additionally carries
// order snapshot fields for order lifecycle events.
type SellerNotification struct {
	ID             int64            `json:"id"`
	SellerID       int64            `json:"seller_id"`
	Type           NotificationType `json:"notification_type"`
	Header         string           `json:"header,omitempty"`
	Message        string           `json:"message,omitempty"`
	IsRead         bool             `json:"is_read"`
	Timestamp      time.Time        `json:"timestamp"`
	AdID           int64            `json:"ad_id,omitempty"`
	OrderID        int64            `json:"order_id,omitempty"`
	OrderStatus    string           `json:"order_status,omitempty"`
	OrderTotal     float64          `json:"order_total,omitempty"`
	BuyerID        int64            `json:"buyer_id,omitempty"`
	BuyerName      string           `json:"buyer_name,omitempty"`
	BuyerAvatarURL string           `json:"buyer_avatar_url,omitempty"`
	Currency       string           `json:"currency,omitempty"`
}
