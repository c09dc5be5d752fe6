package model

import "time"

type NotificationType string

const (
	NotificationComment      NotificationType = "comment"
	NotificationFollow       NotificationType = "follow"
	NotificationSubscription NotificationType = "subscription"
	NotificationContribution NotificationType = "contribution"
	NotificationPayout       NotificationType = "payout"
	NotificationSystem       NotificationType = "system"
)

// Notification — элемент ленты уведомлений
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body,omitempty"`
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"isRead"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

type DeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=web android ios"`
}
