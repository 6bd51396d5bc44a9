package entity

import "time"

// ViewHistory is an append-only (user, ad, timestamp) record. Appends are
// suppressed while an earlier record for the pair sits inside the trailing
// dedupe window.
type ViewHistory struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	AdID     int64     `json:"ad_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// SavedAd is a toggled bookmark with a (user, ad) uniqueness constraint.
type SavedAd struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	AdID    int64     `json:"ad_id"`
	SavedAt time.Time `json:"saved_at"`
}
