package auth

import "time"

// RegisterPayload represents the registration request body.
type RegisterPayload struct {
	Username string `json:"username" mod:"trim" validate:"required,min=3,max=50,username"`
	Email    string `json:"email" mod:"trim,lcase" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload represents the login request body. It is accepted as an
// OAuth2 password form or as JSON.
type LoginPayload struct {
	Username string `json:"username" form:"username" mod:"trim" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
}
