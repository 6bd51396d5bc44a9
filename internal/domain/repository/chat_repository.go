package repository

import (
	"context"

	"vyzioads/internal/domain/entity"
)

// ChatSummary decorates a chat with its last message preview and the unread
// count for the listing party, for conversation list screens.
type ChatSummary struct {
	Chat        *entity.Chat `json:"chat"`
	LastMessage string       `json:"last_message,omitempty"`
	UnreadCount int64        `json:"unread_count"`
}

type ChatRepository interface {
	// ResetAndCreate deletes any existing chat for the (ad, buyer, seller)
	// triple together with its messages and inserts a fresh chat, all inside
	// one transaction. It returns the new chat and the id of the destroyed
	// incarnation, zero when none existed. A concurrent create losing the
	// unique-constraint race resolves to the surviving row instead of an
	// error.
	ResetAndCreate(ctx context.Context, adID, buyerID, sellerID int64) (*entity.Chat, int64, error)

	GetByID(ctx context.Context, id int64) (*entity.Chat, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]*ChatSummary, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*ChatSummary, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	// ListMessages returns the chat's messages ascending by creation time,
	// insertion order breaking ties.
	ListMessages(ctx context.Context, chatID int64) ([]*entity.Message, error)
	// MarkRead flips is_read on every unread message in the chat not sent by
	// readerID, returning the number of rows flipped.
	MarkRead(ctx context.Context, chatID, readerID int64) (int64, error)
}
