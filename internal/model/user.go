package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the shape exposed on /who_am_i and /register.
// The password hash never leaves the repository layer.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// AuthClaims is the decoded payload of a verified access token.
type AuthClaims struct {
	UserID   int64
	TokenID  string
	IssuedAt time.Time
	Expiry   time.Time
}
