package model

import "time"

type ExpenseStatus string

const (
	ExpenseDraft     ExpenseStatus = "draft"
	ExpenseSubmitted ExpenseStatus = "submitted"
	ExpenseApproved  ExpenseStatus = "approved"
	ExpenseRejected  ExpenseStatus = "rejected"
	ExpenseCanceled  ExpenseStatus = "canceled"
)

// ExpenseOrder — заявка автора на расход средств фонда
type ExpenseOrder struct {
	ID          string        `json:"id"`
	FundID      string        `json:"fundId,omitempty"`
	ChannelID   string        `json:"channelId,omitempty"`
	RequesterID string        `json:"requesterId"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Status      ExpenseStatus `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	ReceiptURLs []string      `json:"receiptUrls,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	DecidedAt   *time.Time    `json:"decidedAt,omitempty"`
}

type ExpenseOrderRequest struct {
	FundID      string   `json:"fundId,omitempty"`
	ChannelID   string   `json:"channelId,omitempty"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	Amount      int64    `json:"amount" validate:"gt=0"`
	Currency    string   `json:"currency" validate:"required,len=3"`
	ReceiptURLs []string `json:"receiptUrls,omitempty" validate:"dive,url"`
}
