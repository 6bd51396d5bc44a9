package entity

// User is owned by the external identity store. This backend consults it for
// role flags and display data, never mutates it.
type User struct {
	ID          int64  `json:"id"`
	FirebaseUID string `json:"-"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	IsBuyer     bool   `json:"is_buyer"`
	IsSeller    bool   `json:"is_seller"`
}

// DisplayName prefers the first name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
