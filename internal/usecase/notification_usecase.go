package usecase

import (
	"context"
	"fmt"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/events"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	bus              *events.Bus
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	bus *events.Bus,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		bus:              bus,
	}
}

// Register subscribes the ledger to message creation. The append is
// fire-and-forget: a ledger failure is logged and never rolls back the
// message it describes.
func (uc *NotificationUseCase) Register(bus *events.Bus) {
	bus.Subscribe(events.MessageCreated{}.Name(), func(ctx context.Context, evt events.Event) {
		e := evt.(events.MessageCreated)
		if err := uc.notifyNewMessage(ctx, e.Chat, e.Message, e.Sender); err != nil {
			logger.Warn("notification append failed for message %d: %v", e.Message.ID, err)
		}
	})
}

// notifyNewMessage appends exactly one ledger row for whichever of
// buyer/seller did not send the message.
func (uc *NotificationUseCase) notifyNewMessage(ctx context.Context, chat *entity.Chat, message *entity.Message, sender *entity.User) error {
	recipientID := chat.Counterpart(sender.ID)
	recipient, err := uc.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("%s Says: %s", sender.DisplayName(), message.Text)

	if sender.ID == chat.BuyerID {
		n := &entity.SellerNotification{
			SellerID:       recipientID,
			Type:           entity.NotificationMessage,
			Header:         "New message from buyer",
			Message:        body,
			AdID:           chat.AdID,
			BuyerID:        sender.ID,
			BuyerName:      sender.Username,
			BuyerAvatarURL: sender.AvatarURL,
		}
		if err := uc.notificationRepo.CreateSeller(ctx, n); err != nil {
			return err
		}
		uc.publishCreated(ctx, entity.AudienceSeller, recipientID, recipient.Email)
		return nil
	}

	n := &entity.BuyerNotification{
		BuyerID:         recipientID,
		Type:            entity.NotificationMessage,
		Header:          "New message from seller",
		Message:         body,
		AdID:            chat.AdID,
		SellerID:        sender.ID,
		SellerName:      sender.Username,
		SellerAvatarURL: sender.AvatarURL,
	}
	if err := uc.notificationRepo.CreateBuyer(ctx, n); err != nil {
		return err
	}
	uc.publishCreated(ctx, entity.AudienceBuyer, recipientID, recipient.Email)
	return nil
}

func (uc *NotificationUseCase) publishCreated(ctx context.Context, audience entity.Audience, recipientID int64, email string) {
	uc.bus.Publish(ctx, events.NotificationCreated{
		Audience:    audience,
		RecipientID: recipientID,
		Email:       email,
	})
}

// NotifyWelcome greets a freshly activated user on whichever side of the
// marketplace they signed up for.
func (uc *NotificationUseCase) NotifyWelcome(ctx context.Context, userID int64) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	header := "WELCOME TO VYZIO ADS"
	name := user.DisplayName()

	if user.IsBuyer {
		n := &entity.BuyerNotification{
			BuyerID: userID,
			Type:    entity.NotificationMessage,
			Header:  header,
			Message: fmt.Sprintf("Hello %s! Welcome to Vyzio Ads - your go-to platform for discovering the best ad campaigns and growing your business. Start exploring, posting your questions, and connecting with trusted sellers today!", name),
		}
		if err := uc.notificationRepo.CreateBuyer(ctx, n); err != nil {
			return err
		}
		uc.publishCreated(ctx, entity.AudienceBuyer, userID, user.Email)
		return nil
	}

	n := &entity.SellerNotification{
		SellerID: userID,
		Type:     entity.NotificationMessage,
		Header:   header,
		Message:  fmt.Sprintf("Hi %s! Thank you for joining Vyzio Ads as a seller. Showcase your ad slots, engage with interested buyers, and boost your sales with ease. We're here to support your success!", name),
	}
	if err := uc.notificationRepo.CreateSeller(ctx, n); err != nil {
		return err
	}
	uc.publishCreated(ctx, entity.AudienceSeller, userID, user.Email)
	return nil
}

// NotifyPaymentConfirmed records a payment confirmation on the seller's
// ledger.
func (uc *NotificationUseCase) NotifyPaymentConfirmed(ctx context.Context, seller *entity.User, ad *entity.Ad) error {
	n := &entity.SellerNotification{
		SellerID: seller.ID,
		Type:     entity.NotificationPayment,
		Header:   "Payment confirmed",
		Message:  fmt.Sprintf("Payment of %.2f %s for '%s' has been confirmed. Your ad is now live.", ad.Price, ad.Currency, ad.Title),
		AdID:     ad.ID,
		Currency: ad.Currency,
	}
	if err := uc.notificationRepo.CreateSeller(ctx, n); err != nil {
		return err
	}
	uc.publishCreated(ctx, entity.AudienceSeller, seller.ID, seller.Email)
	return nil
}

// OrderEventInput carries the snapshot fields for an order lifecycle
// notification; orders themselves live outside this core.
type OrderEventInput struct {
	SellerID       int64
	Type           entity.NotificationType
	OrderID        int64
	OrderStatus    string
	OrderTotal     float64
	Currency       string
	BuyerID        int64
	BuyerName      string
	BuyerAvatarURL string
	AdID           int64
}

func (uc *NotificationUseCase) NotifyOrderEvent(ctx context.Context, input OrderEventInput) error {
	seller, err := uc.userRepo.GetByID(ctx, input.SellerID)
	if err != nil {
		return err
	}

	n := &entity.SellerNotification{
		SellerID:       input.SellerID,
		Type:           input.Type,
		Header:         fmt.Sprintf("Order #%d %s", input.OrderID, input.OrderStatus),
		Message:        fmt.Sprintf("Order #%d from %s is now %s.", input.OrderID, input.BuyerName, input.OrderStatus),
		AdID:           input.AdID,
		OrderID:        input.OrderID,
		OrderStatus:    input.OrderStatus,
		OrderTotal:     input.OrderTotal,
		BuyerID:        input.BuyerID,
		BuyerName:      input.BuyerName,
		BuyerAvatarURL: input.BuyerAvatarURL,
		Currency:       input.Currency,
	}
	if err := uc.notificationRepo.CreateSeller(ctx, n); err != nil {
		return err
	}
	uc.publishCreated(ctx, entity.AudienceSeller, input.SellerID, seller.Email)
	return nil
}

// NotifyAdModerated tells the seller how moderation went.
func (uc *NotificationUseCase) NotifyAdModerated(ctx context.Context, seller *entity.User, ad *entity.Ad, approved bool) error {
	n := &entity.SellerNotification{
		SellerID: seller.ID,
		AdID:     ad.ID,
	}
	if approved {
		n.Type = entity.NotificationAdApproved
		n.Header = "Ad approved"
		n.Message = fmt.Sprintf("Your ad '%s' has been approved and is now visible to buyers.", ad.Title)
	} else {
		n.Type = entity.NotificationAdRejected
		n.Header = "Ad rejected"
		n.Message = fmt.Sprintf("Your ad '%s' was rejected by moderation.", ad.Title)
	}
	if err := uc.notificationRepo.CreateSeller(ctx, n); err != nil {
		return err
	}
	uc.publishCreated(ctx, entity.AudienceSeller, seller.ID, seller.Email)
	return nil
}

func (uc *NotificationUseCase) ListBuyer(ctx context.Context, buyerID int64) ([]*entity.BuyerNotification, error) {
	return uc.notificationRepo.ListBuyer(ctx, buyerID)
}

func (uc *NotificationUseCase) ListSeller(ctx context.Context, sellerID int64) ([]*entity.SellerNotification, error) {
	return uc.notificationRepo.ListSeller(ctx, sellerID)
}

// MarkRead is idempotent: the mirror decrement fires only on the actual
// unread-to-read transition, so repeated calls cannot drive the counter
// below the true unread count.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, audience entity.Audience, id int64) error {
	recipientID, flipped, err := uc.notificationRepo.MarkRead(ctx, audience, id)
	if err != nil {
		return err
	}
	if flipped {
		uc.bus.Publish(ctx, events.NotificationRead{Audience: audience, RecipientID: recipientID})
	}
	return nil
}

// Delete removes a ledger row; an unread row's removal also drops the
// mirrored counter.
func (uc *NotificationUseCase) Delete(ctx context.Context, audience entity.Audience, id int64) error {
	recipientID, wasUnread, err := uc.notificationRepo.Delete(ctx, audience, id)
	if err != nil {
		return err
	}
	if wasUnread {
		uc.bus.Publish(ctx, events.NotificationDeleted{Audience: audience, RecipientID: recipientID})
	}
	return nil
}
