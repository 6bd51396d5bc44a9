package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"vyzioads/internal/adapter/api"
	"vyzioads/internal/adapter/api/handler"
	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/events"
	"vyzioads/internal/domain/repository"
	"vyzioads/internal/usecase"
	"vyzioads/pkg/errors"
)

type memoryUserRepo struct {
	users map[int64]*entity.User
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*entity.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

type memoryAdRepo struct {
	ads map[int64]*entity.Ad
}

func (r *memoryAdRepo) Create(_ context.Context, ad *entity.Ad) error {
	r.ads[ad.ID] = ad
	return nil
}

func (r *memoryAdRepo) GetByID(_ context.Context, id int64) (*entity.Ad, error) {
	if ad, ok := r.ads[id]; ok {
		return ad, nil
	}
	return nil, errors.NotFound("Ad", nil)
}

func (r *memoryAdRepo) ListActive(_ context.Context, _, _ int) ([]*entity.Ad, int64, error) {
	return nil, 0, nil
}

func (r *memoryAdRepo) ListBySeller(_ context.Context, _ int64) ([]*entity.Ad, error) {
	return nil, nil
}

func (r *memoryAdRepo) UpdateStatus(_ context.Context, _ int64, _, _ entity.AdStatus) (bool, error) {
	return false, nil
}

func (r *memoryAdRepo) SetHeaderImageURL(_ context.Context, _ int64, _ string) error {
	return nil
}

type memoryChatRepo struct {
	chats    map[int64]*entity.Chat
	messages map[int64][]*entity.Message
	nextID   int64
}

func (r *memoryChatRepo) ResetAndCreate(_ context.Context, adID, buyerID, sellerID int64) (*entity.Chat, int64, error) {
	var oldID int64
	for id, c := range r.chats {
		if c.AdID == adID && c.BuyerID == buyerID && c.SellerID == sellerID {
			oldID = id
			delete(r.chats, id)
			delete(r.messages, id)
		}
	}
	r.nextID++
	chat := &entity.Chat{ID: r.nextID, AdID: adID, BuyerID: buyerID, SellerID: sellerID, CreatedAt: time.Now()}
	r.chats[chat.ID] = chat
	return chat, oldID, nil
}

func (r *memoryChatRepo) GetByID(_ context.Context, id int64) (*entity.Chat, error) {
	if c, ok := r.chats[id]; ok {
		return c, nil
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *memoryChatRepo) ListByBuyer(_ context.Context, _ int64) ([]*repository.ChatSummary, error) {
	return nil, nil
}

func (r *memoryChatRepo) ListBySeller(_ context.Context, _ int64) ([]*repository.ChatSummary, error) {
	return nil, nil
}

func (r *memoryChatRepo) CreateMessage(_ context.Context, m *entity.Message) error {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	r.messages[m.ChatID] = append(r.messages[m.ChatID], m)
	return nil
}

func (r *memoryChatRepo) ListMessages(_ context.Context, chatID int64) ([]*entity.Message, error) {
	return r.messages[chatID], nil
}

func (r *memoryChatRepo) MarkRead(_ context.Context, _, _ int64) (int64, error) {
	return 0, nil
}

func newTestServer() (*echo.Echo, *handler.ChatHandler) {
	userRepo := &memoryUserRepo{users: map[int64]*entity.User{
		1: {ID: 1, Username: "alice", IsBuyer: true},
		2: {ID: 2, Username: "bob", IsSeller: true},
	}}
	adRepo := &memoryAdRepo{ads: map[int64]*entity.Ad{
		10: {ID: 10, UserID: 2, Title: "Billboard", Status: entity.AdStatusActive},
	}}
	chatRepo := &memoryChatRepo{chats: map[int64]*entity.Chat{}, messages: map[int64][]*entity.Message{}}

	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, adRepo, events.NewBus())

	e := echo.New()
	e.Validator = api.NewValidator()
	return e, handler.NewChatHandler(chatUseCase)
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	healthHandler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	if assert.NoError(t, healthHandler(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ok")
	}
}

func TestCreateChatEndpoint(t *testing.T) {
	e, chatHandler := newTestServer()

	body := `{"buyer_id": 1, "seller_id": 2, "ad_id": 10}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chats/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, chatHandler.CreateChat(c)) {
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				ID         int64  `json:"id"`
				BuyerName  string `json:"buyer_name"`
				SellerName string `json:"seller_name"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotZero(t, resp.Data.ID)
		assert.Equal(t, "alice", resp.Data.BuyerName)
		assert.Equal(t, "bob", resp.Data.SellerName)
	}
}

func TestCreateChatValidation(t *testing.T) {
	e, chatHandler := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/chats/create", strings.NewReader(`{"buyer_id": 1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, chatHandler.CreateChat(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	}
}

func TestSendMessageSanitizesBody(t *testing.T) {
	e, chatHandler := newTestServer()

	createReq := httptest.NewRequest(http.MethodPost, "/v1/chats/create", strings.NewReader(`{"buyer_id": 1, "seller_id": 2, "ad_id": 10}`))
	createReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	createRec := httptest.NewRecorder()
	assert.NoError(t, chatHandler.CreateChat(e.NewContext(createReq, createRec)))

	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))

	body := `{"chat_id": ` + strconv.FormatInt(created.Data.ID, 10) + `, "sender_id": 1, "text": "<b>hello</b> there"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/messages/send", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if assert.NoError(t, chatHandler.SendMessage(e.NewContext(req, rec))) {
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"text":"hello there"`)
		assert.NotContains(t, rec.Body.String(), "<b>")
	}
}
