package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/events"
)

func notificationFixture() (*NotificationUseCase, *fakeNotificationRepo, *events.Bus) {
	buyer := &entity.User{ID: 1, Username: "alice", FirstName: "Alice", Email: "alice@example.com", IsBuyer: true}
	seller := &entity.User{ID: 2, Username: "bob", FirstName: "Bob", Email: "bob@example.com", IsSeller: true}

	userRepo := newFakeUserRepo(buyer, seller)
	notificationRepo := newFakeNotificationRepo()
	bus := events.NewBus()

	return NewNotificationUseCase(notificationRepo, userRepo, bus), notificationRepo, bus
}

func TestMessageFanoutTargetsCounterpart(t *testing.T) {
	uc, repo, bus := notificationFixture()
	uc.Register(bus)
	rec := &eventRecorder{}
	rec.subscribe(bus, events.NotificationCreated{}.Name())
	ctx := context.Background()

	chat := &entity.Chat{ID: 7, AdID: 10, BuyerID: 1, SellerID: 2}
	buyer := &entity.User{ID: 1, Username: "alice", FirstName: "Alice", AvatarURL: "https://cdn/a.png"}

	bus.Publish(ctx, events.MessageCreated{
		Chat:    chat,
		Message: &entity.Message{ID: 1, ChatID: 7, SenderID: 1, Text: "still available?"},
		Sender:  buyer,
	})

	sellerRows, _ := repo.ListSeller(ctx, 2)
	if assert.Len(t, sellerRows, 1) {
		n := sellerRows[0]
		assert.Equal(t, entity.NotificationMessage, n.Type)
		assert.Equal(t, "New message from buyer", n.Header)
		assert.Equal(t, "Alice Says: still available?", n.Message)
		assert.Equal(t, int64(1), n.BuyerID)
		assert.Equal(t, "alice", n.BuyerName)
		assert.False(t, n.IsRead)
	}

	buyerRows, _ := repo.ListBuyer(ctx, 1)
	assert.Empty(t, buyerRows)

	created := rec.byName(events.NotificationCreated{}.Name())
	if assert.Len(t, created, 1) {
		evt := created[0].(events.NotificationCreated)
		assert.Equal(t, entity.AudienceSeller, evt.Audience)
		assert.Equal(t, int64(2), evt.RecipientID)
		assert.Equal(t, "bob@example.com", evt.Email)
	}
}

func TestMessageFromSellerNotifiesBuyer(t *testing.T) {
	uc, repo, bus := notificationFixture()
	uc.Register(bus)
	ctx := context.Background()

	chat := &entity.Chat{ID: 7, AdID: 10, BuyerID: 1, SellerID: 2}
	seller := &entity.User{ID: 2, Username: "bob", FirstName: "Bob"}

	bus.Publish(ctx, events.MessageCreated{
		Chat:    chat,
		Message: &entity.Message{ID: 1, ChatID: 7, SenderID: 2, Text: "yes it is"},
		Sender:  seller,
	})

	buyerRows, _ := repo.ListBuyer(ctx, 1)
	if assert.Len(t, buyerRows, 1) {
		assert.Equal(t, "New message from seller", buyerRows[0].Header)
		assert.Equal(t, "Bob Says: yes it is", buyerRows[0].Message)
		assert.Equal(t, int64(2), buyerRows[0].SellerID)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	uc, repo, bus := notificationFixture()
	rec := &eventRecorder{}
	rec.subscribe(bus, events.NotificationRead{}.Name())
	ctx := context.Background()

	n := &entity.BuyerNotification{BuyerID: 1, Type: entity.NotificationMessage}
	assert.NoError(t, repo.CreateBuyer(ctx, n))

	assert.NoError(t, uc.MarkRead(ctx, entity.AudienceBuyer, n.ID))
	assert.NoError(t, uc.MarkRead(ctx, entity.AudienceBuyer, n.ID))

	// only the first call transitioned the row, so only one decrement fires
	assert.Len(t, rec.byName(events.NotificationRead{}.Name()), 1)
}

func TestDeleteUnreadPublishes(t *testing.T) {
	uc, repo, bus := notificationFixture()
	rec := &eventRecorder{}
	rec.subscribe(bus, events.NotificationDeleted{}.Name())
	ctx := context.Background()

	unread := &entity.SellerNotification{SellerID: 2, Type: entity.NotificationMessage}
	assert.NoError(t, repo.CreateSeller(ctx, unread))
	read := &entity.SellerNotification{SellerID: 2, Type: entity.NotificationMessage}
	assert.NoError(t, repo.CreateSeller(ctx, read))
	assert.NoError(t, uc.MarkRead(ctx, entity.AudienceSeller, read.ID))

	assert.NoError(t, uc.Delete(ctx, entity.AudienceSeller, unread.ID))
	assert.NoError(t, uc.Delete(ctx, entity.AudienceSeller, read.ID))

	// deleting the already-read row must not drop the unread counter
	deleted := rec.byName(events.NotificationDeleted{}.Name())
	if assert.Len(t, deleted, 1) {
		assert.Equal(t, int64(2), deleted[0].(events.NotificationDeleted).RecipientID)
	}
}

func TestWelcomeChoosesAudience(t *testing.T) {
	uc, repo, _ := notificationFixture()
	ctx := context.Background()

	assert.NoError(t, uc.NotifyWelcome(ctx, 1))
	assert.NoError(t, uc.NotifyWelcome(ctx, 2))

	buyerRows, _ := repo.ListBuyer(ctx, 1)
	if assert.Len(t, buyerRows, 1) {
		assert.Equal(t, "WELCOME TO VYZIO ADS", buyerRows[0].Header)
		assert.Contains(t, buyerRows[0].Message, "Hello Alice!")
	}

	sellerRows, _ := repo.ListSeller(ctx, 2)
	if assert.Len(t, sellerRows, 1) {
		assert.Contains(t, sellerRows[0].Message, "Hi Bob!")
	}
}

func TestNotifyOrderEvent(t *testing.T) {
	uc, repo, _ := notificationFixture()
	ctx := context.Background()

	err := uc.NotifyOrderEvent(ctx, OrderEventInput{
		SellerID:    2,
		Type:        entity.NotificationOrderShipped,
		OrderID:     42,
		OrderStatus: "shipped",
		OrderTotal:  99.50,
		Currency:    "EUR",
		BuyerID:     1,
		BuyerName:   "alice",
		AdID:        10,
	})
	assert.NoError(t, err)

	rows, _ := repo.ListSeller(ctx, 2)
	if assert.Len(t, rows, 1) {
		n := rows[0]
		assert.Equal(t, entity.NotificationOrderShipped, n.Type)
		assert.Equal(t, "Order #42 shipped", n.Header)
		assert.Equal(t, int64(42), n.OrderID)
		assert.Equal(t, 99.50, n.OrderTotal)
		assert.Equal(t, "alice", n.BuyerName)
	}
}

func TestNotifyAdModerated(t *testing.T) {
	uc, repo, _ := notificationFixture()
	ctx := context.Background()

	seller := &entity.User{ID: 2, Email: "bob@example.com"}
	ad := &entity.Ad{ID: 10, Title: "Billboard"}

	assert.NoError(t, uc.NotifyAdModerated(ctx, seller, ad, true))
	assert.NoError(t, uc.NotifyAdModerated(ctx, seller, ad, false))

	rows, _ := repo.ListSeller(ctx, 2)
	assert.Len(t, rows, 2)
	types := map[entity.NotificationType]bool{}
	for _, n := range rows {
		types[n.Type] = true
	}
	assert.True(t, types[entity.NotificationAdApproved])
	assert.True(t, types[entity.NotificationAdRejected])
}
