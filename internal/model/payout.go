package model

import "time"

type PayoutStatus string

const (
	PayoutRequested PayoutStatus = "requested"
	PayoutApproved  PayoutStatus = "approved"
	PayoutRejected  PayoutStatus = "rejected"
	PayoutPaid      PayoutStatus = "paid"
	PayoutCanceled  PayoutStatus = "canceled"
)

type Payout struct {
	ID          string       `json:"id"`
	CreatorID   string       `json:"creatorId"`
	MethodID    string       `json:"methodId"`
	Amount      int64        `json:"amount"`
	Currency    string       `json:"currency"`
	Status      PayoutStatus `json:"status"`
	Note        string       `json:"note,omitempty"`
	RequestedAt time.Time    `json:"requestedAt"`
	PaidAt      *time.Time   `json:"paidAt,omitempty"`
}

type PayoutRequest struct {
	MethodID string `json:"methodId" validate:"required"`
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type PayoutMethod struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

type PayoutMethodRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=iban paypal"`
	Account string `json:"account" validate:"required"`
	Label   string `json:"label,omitempty"`
}

type Balance struct {
	Available int64  `json:"available"`
	Pending   int64  `json:"pending"`
	Currency  string `json:"currency"`
}
