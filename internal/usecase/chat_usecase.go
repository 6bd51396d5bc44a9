package usecase

import (
	"context"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/events"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
	"vyzioads/pkg/sanitize"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	adRepo   repository.AdRepository
	bus      *events.Bus
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	adRepo repository.AdRepository,
	bus *events.Bus,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
		adRepo:   adRepo,
		bus:      bus,
	}
}

type ChatResponse struct {
	*entity.Chat
	BuyerName  string `json:"buyer_name"`
	SellerName string `json:"seller_name"`
}

type MessageResponse struct {
	*entity.Message
	SenderName string `json:"sender_name"`
}

// OpenConversation starts a conversation between a buyer and a seller about
// an ad. Starting a chat for a triple that already has one destroys the old
// conversation and its messages and begins fresh; the product treats "start
// chat" as "restart conversation", not "resume".
func (uc *ChatUseCase) OpenConversation(ctx context.Context, adID, buyerID, sellerID int64) (*ChatResponse, error) {
	if buyerID == sellerID {
		return nil, errors.BadRequest("Buyer and seller must be different users", nil)
	}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, errors.NotFound("Buyer", err)
	}
	if !buyer.IsBuyer {
		return nil, errors.BadRequest("User is not a buyer", nil)
	}

	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}
	if !seller.IsSeller {
		return nil, errors.BadRequest("User is not a seller", nil)
	}

	if _, err := uc.adRepo.GetByID(ctx, adID); err != nil {
		return nil, errors.NotFound("Ad", err)
	}

	chat, oldChatID, err := uc.chatRepo.ResetAndCreate(ctx, adID, buyerID, sellerID)
	if err != nil {
		return nil, err
	}

	if oldChatID != 0 {
		uc.bus.Publish(ctx, events.ChatReset{OldChatID: oldChatID, NewChat: chat})
	}

	return &ChatResponse{
		Chat:       chat,
		BuyerName:  buyer.Username,
		SellerName: seller.Username,
	}, nil
}

// PostMessage appends a message to a chat. The text is stripped of markup
// and normalized before it hits the primary store so the mirror documents
// stay clean and comparable. Ledger and mirror fan-out ride on the event bus
// after the insert commits; their failures never reach the caller.
func (uc *ChatUseCase) PostMessage(ctx context.Context, chatID, senderID int64, rawText string) (*MessageResponse, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, errors.NotFound("Sender", err)
	}

	if !chat.HasParticipant(senderID) {
		return nil, errors.InvalidSender("Sender must be buyer or seller in this chat")
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Text:     sanitize.Message(rawText),
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	uc.bus.Publish(ctx, events.MessageCreated{Chat: chat, Message: message, Sender: sender})

	return &MessageResponse{
		Message:    message,
		SenderName: sender.Username,
	}, nil
}

// ListMessages returns the chat's full history ascending by creation time.
// Real-time delivery is the mirror's job, not this repository's.
func (uc *ChatUseCase) ListMessages(ctx context.Context, chatID int64) ([]*entity.Message, error) {
	if _, err := uc.chatRepo.GetByID(ctx, chatID); err != nil {
		return nil, err
	}
	return uc.chatRepo.ListMessages(ctx, chatID)
}

// MarkChatRead flips the read flag on all unread messages in the chat not
// sent by the reader. Ledger-only: no mirror update fires from this path.
func (uc *ChatUseCase) MarkChatRead(ctx context.Context, chatID, readerID int64) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(readerID) {
		return errors.Forbidden("Reader is not a participant in this chat", nil)
	}

	_, err = uc.chatRepo.MarkRead(ctx, chatID, readerID)
	return err
}

func (uc *ChatUseCase) ListChatsForBuyer(ctx context.Context, buyerID int64) ([]*repository.ChatSummary, error) {
	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, errors.NotFound("Buyer", err)
	}
	if !buyer.IsBuyer {
		return nil, errors.BadRequest("User is not a buyer", nil)
	}
	return uc.chatRepo.ListByBuyer(ctx, buyerID)
}

func (uc *ChatUseCase) ListChatsForSeller(ctx context.Context, sellerID int64) ([]*repository.ChatSummary, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}
	if !seller.IsSeller {
		return nil, errors.BadRequest("User is not a seller", nil)
	}
	return uc.chatRepo.ListBySeller(ctx, sellerID)
}
