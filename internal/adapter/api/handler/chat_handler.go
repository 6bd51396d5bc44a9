package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"vyzioads/internal/adapter/api/middleware"
	"vyzioads/internal/usecase"
	"vyzioads/pkg/errors"
	"vyzioads/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type createChatRequest struct {
	BuyerID  int64 `json:"buyer_id" validate:"required"`
	SellerID int64 `json:"seller_id" validate:"required"`
	AdID     int64 `json:"ad_id" validate:"required"`
}

type sendMessageRequest struct {
	ChatID   int64  `json:"chat_id" validate:"required"`
	SenderID int64  `json:"sender_id" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

// CreateChat opens (or restarts) the conversation for an (ad, buyer, seller)
// triple.
func (h *ChatHandler) CreateChat(c echo.Context) error {
	var req createChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	chat, err := h.chatUseCase.OpenConversation(c.Request().Context(), req.AdID, req.BuyerID, req.SellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, chat)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.PostMessage(c.Request().Context(), req.ChatID, req.SenderID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	chatID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// MarkChatRead flips the read flag for the authenticated reader.
func (h *ChatHandler) MarkChatRead(c echo.Context) error {
	chatID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	reader := middleware.CurrentUser(c)
	if reader == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	if err := h.chatUseCase.MarkChatRead(c.Request().Context(), chatID, reader.ID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"success": true})
}

func (h *ChatHandler) GetBuyerChats(c echo.Context) error {
	buyerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	chats, err := h.chatUseCase.ListChatsForBuyer(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

func (h *ChatHandler) GetSellerChats(c echo.Context) error {
	sellerID, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	chats, err := h.chatUseCase.ListChatsForSeller(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

func parseID(c echo.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid "+param+" parameter", err)
	}
	return id, nil
}
