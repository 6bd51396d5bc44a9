package entity

import "time"

type AdStatus string

const (
	AdStatusDraft    AdStatus = "draft"
	AdStatusPending  AdStatus = "pending"
	AdStatusActive   AdStatus = "active"
	AdStatusPaused   AdStatus = "paused"
	AdStatusSold     AdStatus = "sold"
	AdStatusArchived AdStatus = "archived"
)

type Ad struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	City           string    `json:"city"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	Status         AdStatus  `json:"status"`
	HeaderImageURL string    `json:"header_image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
