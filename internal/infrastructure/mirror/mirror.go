// Package mirror keeps the client-facing Firestore documents approximately
// in sync with the primary store: per-recipient notification counters and
// per-chat message feeds. It is not the system of record; every write here
// is a function of durable primary-store state and the whole mirror is
// rebuildable. Calls are best-effort: bounded by a short timeout, logged on
// failure, never retried and never surfaced to the primary request.
package mirror

import (
	"context"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/events"
	"vyzioads/pkg/logger"
)

const (
	buyerCountersCollection  = "Buyer_Notifications"
	sellerCountersCollection = "Seller_Notifications"
	chatsCollection          = "Marketplace_Chats"
	messagesSubcollection    = "messages"
)

type Sync struct {
	client  *firestore.Client
	timeout time.Duration
}

// NewSync wraps an injected Firestore client. The caller owns the client's
// lifecycle and closes it on process teardown.
func NewSync(client *firestore.Client, timeout time.Duration) *Sync {
	return &Sync{client: client, timeout: timeout}
}

// Register wires the mirror into the domain event bus. The subscription list
// is the complete fan-out: counter bumps on ledger appends, counter drops on
// read/delete, message mirroring, and cascade cleanup on chat resets.
// MarkChatRead intentionally has no subscriber here; mirror read-state is
// client-driven.
func (s *Sync) Register(bus *events.Bus) {
	bus.Subscribe(events.NotificationCreated{}.Name(), func(ctx context.Context, evt events.Event) {
		e := evt.(events.NotificationCreated)
		if !e.IsRead {
			s.BumpCounter(ctx, e.Audience, e.RecipientID, e.Email)
		}
	})
	bus.Subscribe(events.NotificationRead{}.Name(), func(ctx context.Context, evt events.Event) {
		e := evt.(events.NotificationRead)
		s.DropCounter(ctx, e.Audience, e.RecipientID)
	})
	bus.Subscribe(events.NotificationDeleted{}.Name(), func(ctx context.Context, evt events.Event) {
		e := evt.(events.NotificationDeleted)
		s.DropCounter(ctx, e.Audience, e.RecipientID)
	})
	bus.Subscribe(events.MessageCreated{}.Name(), func(ctx context.Context, evt events.Event) {
		e := evt.(events.MessageCreated)
		s.MirrorMessage(ctx, e.Chat, e.Message, e.Sender)
	})
	bus.Subscribe(events.ChatReset{}.Name(), func(ctx context.Context, evt events.Event) {
		e := evt.(events.ChatReset)
		s.PurgeChat(ctx, e.OldChatID)
	})
}

func (s *Sync) counterCollection(audience entity.Audience) string {
	if audience == entity.AudienceBuyer {
		return buyerCountersCollection
	}
	return sellerCountersCollection
}

func (s *Sync) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

// BumpCounter increments the recipient's counter document, creating it with
// count=1 when absent. The increment is atomic; concurrent bursts from
// multiple chats never lose deltas.
func (s *Sync) BumpCounter(ctx context.Context, audience entity.Audience, recipientID int64, email string) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	docRef := s.client.Collection(s.counterCollection(audience)).Doc(formatID(recipientID))

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			logger.Warn("mirror: counter lookup failed for %s/%d: %v", audience, recipientID, err)
			return
		}
		data := map[string]interface{}{
			"user_id":   formatID(recipientID),
			"email":     email,
			"count":     1,
			"is_read":   false,
			"timestamp": firestore.ServerTimestamp,
		}
		if audience == entity.AudienceBuyer {
			data["soundTrigger"] = uuid.NewString()
		}
		if _, err := docRef.Set(ctx, data); err != nil {
			logger.Warn("mirror: counter create failed for %s/%d: %v", audience, recipientID, err)
		}
		return
	}

	updates := []firestore.Update{
		{Path: "count", Value: firestore.Increment(1)},
		{Path: "timestamp", Value: firestore.ServerTimestamp},
	}
	if audience == entity.AudienceBuyer {
		updates = append(updates, firestore.Update{Path: "soundTrigger", Value: uuid.NewString()})
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		logger.Warn("mirror: counter increment failed for %s/%d: %v", audience, recipientID, err)
	}
}

// DropCounter decrements the recipient's counter, floored at zero: a
// decrement against a missing doc or a zero count is a no-op.
func (s *Sync) DropCounter(ctx context.Context, audience entity.Audience, recipientID int64) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	docRef := s.client.Collection(s.counterCollection(audience)).Doc(formatID(recipientID))

	snap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			logger.Warn("mirror: counter lookup failed for %s/%d: %v", audience, recipientID, err)
		}
		return
	}

	count, _ := snap.Data()["count"].(int64)
	if count <= 0 {
		return
	}

	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "count", Value: firestore.Increment(-1)},
		{Path: "timestamp", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		logger.Warn("mirror: counter decrement failed for %s/%d: %v", audience, recipientID, err)
	}
}

type mirroredMessage struct {
	SenderID       int64     `firestore:"sender_id"`
	SenderUsername string    `firestore:"sender_username"`
	Text           string    `firestore:"text"`
	Timestamp      time.Time `firestore:"timestamp,serverTimestamp"`
	Avatar         string    `firestore:"avatar"`
	ID             int64     `firestore:"id"`
	IsRead         bool      `firestore:"is_read"`
}

// MirrorMessage writes the message copy under its chat document. Set
// overwrites, so replays are harmless.
func (s *Sync) MirrorMessage(ctx context.Context, chat *entity.Chat, message *entity.Message, sender *entity.User) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	doc := s.client.Collection(chatsCollection).
		Doc(formatID(chat.ID)).
		Collection(messagesSubcollection).
		Doc(formatID(message.ID))

	_, err := doc.Set(ctx, mirroredMessage{
		SenderID:       sender.ID,
		SenderUsername: sender.Username,
		Text:           message.Text,
		Avatar:         sender.AvatarURL,
		ID:             message.ID,
		IsRead:         message.IsRead,
	})
	if err != nil {
		logger.Warn("mirror: message write failed for chat %d message %d: %v", chat.ID, message.ID, err)
	}
}

// PurgeChat deletes every mirrored message under the chat before the chat
// document itself. Firestore has no native cascade; children must never
// outlive the parent delete.
func (s *Sync) PurgeChat(ctx context.Context, chatID int64) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	chatDoc := s.client.Collection(chatsCollection).Doc(formatID(chatID))

	iter := chatDoc.Collection(messagesSubcollection).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Warn("mirror: message iteration failed for chat %d: %v", chatID, err)
			return
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			logger.Warn("mirror: message delete failed for chat %d: %v", chatID, err)
			return
		}
	}

	if _, err := chatDoc.Delete(ctx); err != nil {
		logger.Warn("mirror: chat delete failed for chat %d: %v", chatID, err)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
