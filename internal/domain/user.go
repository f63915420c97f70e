package domain

import "time"

// User is an account that signs in with an email or phone identifier.
// At least one of Email and Phone is set.
type User struct {
	ID           int64     `json:"id"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserView is the public projection of a user.
type UserView struct {
	ID    int64   `json:"id"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Role  string  `json:"role"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

// TokenResponse is returned by every sign-in path.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewTokenResponse(token string) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "bearer"}
}

// Deleted acknowledges a delete by id.
type Deleted struct {
	OK        bool  `json:"ok"`
	DeletedID int64 `json:"deleted_id"`
}
