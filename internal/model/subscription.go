package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionPending  SubscriptionStatus = "pending"
)

type Subscription struct {
	ID               string             `json:"id"`
	ChannelID        string             `json:"channelId"`
	TierID           string             `json:"tierId,omitempty"`
	UserID           string             `json:"userId"`
	Status           SubscriptionStatus `json:"status"`
	Provider         string             `json:"provider,omitempty"`
	CurrentPeriodEnd *time.Time         `json:"currentPeriodEnd,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	CanceledAt       *time.Time         `json:"canceledAt,omitempty"`
}

type CreateSubscriptionRequest struct {
	ChannelID string `json:"channelId" validate:"required"`
	TierID    string `json:"tierId,omitempty"`
	Provider  string `json:"provider,omitempty" validate:"omitempty,oneof=paypal iyzico free"`
}
