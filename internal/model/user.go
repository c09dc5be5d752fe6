package model

import "time"

type Role string

const (
	RoleReader  Role = "reader"
	RoleCreator Role = "creator"
	RoleEditor  Role = "editor"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Role        Role      `json:"role"`
	Banned      bool      `json:"banned,omitempty"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	IsFollowing bool      `json:"isFollowing,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,max=80"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL   *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

type Tag struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
