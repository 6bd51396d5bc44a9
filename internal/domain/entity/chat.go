package entity

import "time"

// Chat is a conversation scoped to exactly one (ad, buyer, seller) triple.
// The primary store enforces the triple's uniqueness; a repeated open for the
// same triple destroys the old incarnation and starts fresh.
type Chat struct {
	ID        int64     `json:"id"`
	AdID      int64     `json:"ad"`
	BuyerID   int64     `json:"buyer"`
	SellerID  int64     `json:"seller"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasParticipant reports whether userID is the chat's buyer or seller.
func (c *Chat) HasParticipant(userID int64) bool {
	return userID == c.BuyerID || userID == c.SellerID
}

// Counterpart returns the other party of the chat relative to userID. The
// caller must have checked HasParticipant first.
func (c *Chat) Counterpart(userID int64) int64 {
	if userID == c.BuyerID {
		return c.SellerID
	}
	return c.BuyerID
}
