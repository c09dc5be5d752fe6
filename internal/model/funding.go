package model

import "time"

// Fund — сбор средств, привязанный к контенту
type Fund struct {
	ID          string    `json:"id"`
	ContentType string    `json:"contentType"`
	ContentID   string    `json:"contentId"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Goal        int64     `json:"goal"`
	Raised      int64     `json:"raised"`
	Currency    string    `json:"currency"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateFundRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=news channel poll"`
	ContentID   string `json:"contentId" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Goal        int64  `json:"goal" validate:"gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
}

type Contribution struct {
	ID        string    `json:"id"`
	FundID    string    `json:"fundId"`
	UserID    string    `json:"userId,omitempty"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Provider  string    `json:"provider"`
	Anonymous bool      `json:"anonymous"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContributionRequest struct {
	Amount    int64  `json:"amount" validate:"gt=0"`
	Currency  string `json:"currency" validate:"required,len=3"`
	Provider  string `json:"provider" validate:"required,oneof=paypal iyzico"`
	Anonymous bool   `json:"anonymous,omitempty"`
	Message   string `json:"message,omitempty" validate:"max=280"`
}
