package entity

import "time"

// Message is immutable once created except for the read flag.
type Message struct {
	ID            int64     `json:"id"`
	ChatID        int64     `json:"chat"`
	SenderID      int64     `json:"sender"`
	Text          string    `json:"text"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
