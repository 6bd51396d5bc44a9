package usecase

import (
	"context"
	"sync"
	"time"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/events"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
)

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*entity.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

type fakeAdRepo struct {
	ads    map[int64]*entity.Ad
	nextID int64
}

func newFakeAdRepo(ads ...*entity.Ad) *fakeAdRepo {
	r := &fakeAdRepo{ads: make(map[int64]*entity.Ad)}
	for _, ad := range ads {
		r.ads[ad.ID] = ad
		if ad.ID > r.nextID {
			r.nextID = ad.ID
		}
	}
	return r
}

func (r *fakeAdRepo) Create(_ context.Context, ad *entity.Ad) error {
	r.nextID++
	ad.ID = r.nextID
	ad.CreatedAt = time.Now()
	r.ads[ad.ID] = ad
	return nil
}

func (r *fakeAdRepo) GetByID(_ context.Context, id int64) (*entity.Ad, error) {
	if ad, ok := r.ads[id]; ok {
		return ad, nil
	}
	return nil, errors.NotFound("Ad", nil)
}

func (r *fakeAdRepo) ListActive(_ context.Context, limit, offset int) ([]*entity.Ad, int64, error) {
	var active []*entity.Ad
	for _, ad := range r.ads {
		if ad.Status == entity.AdStatusActive {
			active = append(active, ad)
		}
	}
	return active, int64(len(active)), nil
}

func (r *fakeAdRepo) ListBySeller(_ context.Context, sellerID int64) ([]*entity.Ad, error) {
	var out []*entity.Ad
	for _, ad := range r.ads {
		if ad.UserID == sellerID {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (r *fakeAdRepo) UpdateStatus(_ context.Context, id int64, from, to entity.AdStatus) (bool, error) {
	ad, ok := r.ads[id]
	if !ok || ad.Status != from {
		return false, nil
	}
	ad.Status = to
	return true, nil
}

func (r *fakeAdRepo) SetHeaderImageURL(_ context.Context, id int64, url string) error {
	ad, ok := r.ads[id]
	if !ok {
		return errors.NotFound("Ad", nil)
	}
	ad.HeaderImageURL = url
	return nil
}

type fakeChatRepo struct {
	chats         map[int64]*entity.Chat
	messages      map[int64][]*entity.Message
	nextChatID    int64
	nextMessageID int64
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[int64]*entity.Chat),
		messages: make(map[int64][]*entity.Message),
	}
}

func (r *fakeChatRepo) ResetAndCreate(_ context.Context, adID, buyerID, sellerID int64) (*entity.Chat, int64, error) {
	var oldID int64
	for id, c := range r.chats {
		if c.AdID == adID && c.BuyerID == buyerID && c.SellerID == sellerID {
			oldID = id
			delete(r.chats, id)
			delete(r.messages, id)
			break
		}
	}

	r.nextChatID++
	chat := &entity.Chat{
		ID:        r.nextChatID,
		AdID:      adID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.chats[chat.ID] = chat
	return chat, oldID, nil
}

func (r *fakeChatRepo) GetByID(_ context.Context, id int64) (*entity.Chat, error) {
	if c, ok := r.chats[id]; ok {
		return c, nil
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) ListByBuyer(_ context.Context, buyerID int64) ([]*repository.ChatSummary, error) {
	var out []*repository.ChatSummary
	for _, c := range r.chats {
		if c.BuyerID == buyerID {
			out = append(out, r.summarize(c, buyerID))
		}
	}
	return out, nil
}

func (r *fakeChatRepo) ListBySeller(_ context.Context, sellerID int64) ([]*repository.ChatSummary, error) {
	var out []*repository.ChatSummary
	for _, c := range r.chats {
		if c.SellerID == sellerID {
			out = append(out, r.summarize(c, sellerID))
		}
	}
	return out, nil
}

func (r *fakeChatRepo) summarize(c *entity.Chat, viewerID int64) *repository.ChatSummary {
	s := &repository.ChatSummary{Chat: c}
	msgs := r.messages[c.ID]
	if len(msgs) > 0 {
		s.LastMessage = msgs[len(msgs)-1].Text
	}
	for _, m := range msgs {
		if !m.IsRead && m.SenderID != viewerID {
			s.UnreadCount++
		}
	}
	return s
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, m *entity.Message) error {
	if _, ok := r.chats[m.ChatID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	r.nextMessageID++
	m.ID = r.nextMessageID
	m.CreatedAt = time.Now()
	r.messages[m.ChatID] = append(r.messages[m.ChatID], m)
	return nil
}

func (r *fakeChatRepo) ListMessages(_ context.Context, chatID int64) ([]*entity.Message, error) {
	return r.messages[chatID], nil
}

func (r *fakeChatRepo) MarkRead(_ context.Context, chatID, readerID int64) (int64, error) {
	var flipped int64
	for _, m := range r.messages[chatID] {
		if !m.IsRead && m.SenderID != readerID {
			m.IsRead = true
			flipped++
		}
	}
	return flipped, nil
}

type fakeNotificationRepo struct {
	buyers  map[int64]*entity.BuyerNotification
	sellers map[int64]*entity.SellerNotification
	nextID  int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		buyers:  make(map[int64]*entity.BuyerNotification),
		sellers: make(map[int64]*entity.SellerNotification),
	}
}

func (r *fakeNotificationRepo) CreateBuyer(_ context.Context, n *entity.BuyerNotification) error {
	r.nextID++
	n.ID = r.nextID
	n.Timestamp = time.Now()
	r.buyers[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) CreateSeller(_ context.Context, n *entity.SellerNotification) error {
	r.nextID++
	n.ID = r.nextID
	n.Timestamp = time.Now()
	r.sellers[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) ListBuyer(_ context.Context, buyerID int64) ([]*entity.BuyerNotification, error) {
	var out []*entity.BuyerNotification
	for _, n := range r.buyers {
		if n.BuyerID == buyerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) ListSeller(_ context.Context, sellerID int64) ([]*entity.SellerNotification, error) {
	var out []*entity.SellerNotification
	for _, n := range r.sellers {
		if n.SellerID == sellerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, audience entity.Audience, id int64) (int64, bool, error) {
	if audience == entity.AudienceBuyer {
		n, ok := r.buyers[id]
		if !ok {
			return 0, false, errors.NotFound("Notification", nil)
		}
		if n.IsRead {
			return n.BuyerID, false, nil
		}
		n.IsRead = true
		return n.BuyerID, true, nil
	}
	n, ok := r.sellers[id]
	if !ok {
		return 0, false, errors.NotFound("Notification", nil)
	}
	if n.IsRead {
		return n.SellerID, false, nil
	}
	n.IsRead = true
	return n.SellerID, true, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, audience entity.Audience, id int64) (int64, bool, error) {
	if audience == entity.AudienceBuyer {
		n, ok := r.buyers[id]
		if !ok {
			return 0, false, errors.NotFound("Notification", nil)
		}
		delete(r.buyers, id)
		return n.BuyerID, !n.IsRead, nil
	}
	n, ok := r.sellers[id]
	if !ok {
		return 0, false, errors.NotFound("Notification", nil)
	}
	delete(r.sellers, id)
	return n.SellerID, !n.IsRead, nil
}

type savedKey struct {
	userID int64
	adID   int64
}

type fakeTrackingRepo struct {
	views  []*entity.ViewHistory
	saved  map[savedKey]*entity.SavedAd
	clock  func() time.Time
	nextID int64
}

func newFakeTrackingRepo(clock func() time.Time) *fakeTrackingRepo {
	return &fakeTrackingRepo{
		saved: make(map[savedKey]*entity.SavedAd),
		clock: clock,
	}
}

func (r *fakeTrackingRepo) HasRecentView(_ context.Context, userID, adID int64, since time.Time) (bool, error) {
	for _, v := range r.views {
		if v.UserID == userID && v.AdID == adID && !v.ViewedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTrackingRepo) CreateView(_ context.Context, v *entity.ViewHistory) error {
	r.nextID++
	v.ID = r.nextID
	v.ViewedAt = r.clock()
	r.views = append(r.views, v)
	return nil
}

func (r *fakeTrackingRepo) ListViewsByUser(_ context.Context, userID int64, limit int) ([]*entity.ViewHistory, error) {
	var out []*entity.ViewHistory
	for _, v := range r.views {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTrackingRepo) ListViewsByAd(_ context.Context, adID int64, limit int) ([]*entity.ViewHistory, error) {
	var out []*entity.ViewHistory
	for _, v := range r.views {
		if v.AdID == adID {
			out = append(out, v)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTrackingRepo) SaveAd(_ context.Context, s *entity.SavedAd) (bool, error) {
	key := savedKey{userID: s.UserID, adID: s.AdID}
	if _, ok := r.saved[key]; ok {
		return false, nil
	}
	r.nextID++
	s.ID = r.nextID
	s.SavedAt = r.clock()
	r.saved[key] = s
	return true, nil
}

func (r *fakeTrackingRepo) UnsaveAd(_ context.Context, userID, adID int64) (bool, error) {
	key := savedKey{userID: userID, adID: adID}
	if _, ok := r.saved[key]; !ok {
		return false, nil
	}
	delete(r.saved, key)
	return true, nil
}

func (r *fakeTrackingRepo) ListSavedByUser(_ context.Context, userID int64) ([]*entity.SavedAd, error) {
	var out []*entity.SavedAd
	for _, s := range r.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeTrackingRepo) DashboardCounts(_ context.Context, userID int64) (*repository.DashboardCounts, error) {
	counts := &repository.DashboardCounts{}
	for _, s := range r.saved {
		if s.UserID == userID {
			counts.SavedAds++
		}
	}
	seen := make(map[int64]bool)
	for _, v := range r.views {
		if v.UserID == userID && !seen[v.AdID] {
			seen[v.AdID] = true
			counts.ViewedAds++
		}
	}
	return counts, nil
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) subscribe(bus *events.Bus, names ...string) {
	for _, name := range names {
		bus.Subscribe(name, func(_ context.Context, evt events.Event) {
			r.mu.Lock()
			r.events = append(r.events, evt)
			r.mu.Unlock()
		})
	}
}

func (r *eventRecorder) byName(name string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, evt := range r.events {
		if evt.Name() == name {
			out = append(out, evt)
		}
	}
	return out
}
