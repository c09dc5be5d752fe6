package model

import "time"

type Account struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Phone         string    `json:"phone,omitempty"`
	Country       string    `json:"country,omitempty"`
	Language      string    `json:"language,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type UpdateAccountRequest struct {
	Phone    *string `json:"phone,omitempty" validate:"omitempty,e164"`
	Country  *string `json:"country,omitempty" validate:"omitempty,len=2"`
	Language *string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

// AuthResult — ответ входа/обновления токена
type AuthResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn,omitempty"`
	User         *User  `json:"user,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

type ExportJob struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
