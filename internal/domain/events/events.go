// Package events carries the domain events fanned out after primary-store
// writes commit, and the synchronous bus that delivers them. Subscribers are
// best-effort: a failing subscriber never propagates to the publisher.
package events

import "vyzioads/internal/domain/entity"

type Event interface {
	Name() string
}

// MessageCreated fires after a message row has committed. Consumed by the
// notification ledger and the mirror.
type MessageCreated struct {
	Chat    *entity.Chat
	Message *entity.Message
	Sender  *entity.User
}

func (MessageCreated) Name() string { return "message.created" }

// ChatReset fires when OpenConversation destroyed a previous incarnation of
// a chat. OldChatID identifies the incarnation whose mirror documents must
// be cascaded away.
type ChatReset struct {
	OldChatID int64
	NewChat   *entity.Chat
}

func (ChatReset) Name() string { return "chat.reset" }

// NotificationCreated fires after an unread ledger row has committed.
type NotificationCreated struct {
	Audience    entity.Audience
	RecipientID int64
	Email       string
	IsRead      bool
}

func (NotificationCreated) Name() string { return "notification.created" }

// NotificationRead fires on the first unread-to-read transition of a ledger
// row. Repeated mark-read calls are no-ops and publish nothing.
type NotificationRead struct {
	Audience    entity.Audience
	RecipientID int64
}

func (NotificationRead) Name() string { return "notification.read" }

// NotificationDeleted fires after a ledger row delete.
type NotificationDeleted struct {
	Audience    entity.Audience
	RecipientID int64
}

func (NotificationDeleted) Name() string { return "notification.deleted" }
