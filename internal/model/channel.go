package model

import "time"

// Channel — канал автора с уровнями подписки
type Channel struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	OwnerID     string    `json:"ownerId"`
	Verified    bool      `json:"verified"`
	Subscribers int       `json:"subscribers"`
	Subscribed  bool      `json:"subscribed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Tier — уровень платной подписки канала
type Tier struct {
	ID          string   `json:"id"`
	ChannelID   string   `json:"channelId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"`
	Currency    string   `json:"currency"`
	Interval    string   `json:"interval"`
	Perks       []string `json:"perks,omitempty"`
}

type CreateChannelRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=80"`
	Slug        string `json:"slug,omitempty" validate:"omitempty,max=80"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	Category    string `json:"category,omitempty"`
}

type UpdateChannelRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=80"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    *string `json:"category,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

type TierRequest struct {
	Name        string   `json:"name" validate:"required,max=60"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price" validate:"gte=0"`
	Currency    string   `json:"currency" validate:"required,len=3"`
	Interval    string   `json:"interval" validate:"required,oneof=month year"`
	Perks       []string `json:"perks,omitempty"`
}

type Subscriber struct {
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	TierID       string    `json:"tierId,omitempty"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
