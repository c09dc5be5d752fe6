package api

import (
	"context"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

// PayoutAPI — /api/payouts, выплаты авторам
type PayoutAPI struct {
	ep *transport.Endpoint
}

func NewPayoutAPI(t *transport.Client, s session.Session) *PayoutAPI {
	return &PayoutAPI{ep: t.Bind(s, "/api/payouts")}
}

func (a *PayoutAPI) GetPayouts(ctx context.Context, status model.PayoutStatus, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Payout], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := newQuery().str("status", string(status)).page(page)
	return transport.List[model.Payout](ctx, a.ep, "", q.values(), transport.MetaKey)
}

func (a *PayoutAPI) GetPayout(ctx context.Context, id string) (*model.Payout, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var p model.Payout
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *PayoutAPI) RequestPayout(ctx context.Context, req model.PayoutRequest) (*model.Payout, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var p model.Payout
	if err := a.ep.Post(ctx, "", req, transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *PayoutAPI) CancelPayout(ctx context.Context, id string) (*model.Payout, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var p model.Payout
	if err := a.ep.Post(ctx, "/"+url.PathEscape(id)+"/cancel", nil, transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *PayoutAPI) GetBalance(ctx context.Context) (*model.Balance, error) {
	var b model.Balance
	if err := a.ep.Get(ctx, "/balance", nil, transport.Envelope, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *PayoutAPI) GetPayoutMethods(ctx context.Context) ([]model.PayoutMethod, error) {
	methods := []model.PayoutMethod{}
	if err := a.ep.Get(ctx, "/methods", nil, transport.Raw, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (a *PayoutAPI) AddPayoutMethod(ctx context.Context, req model.PayoutMethodRequest) (*model.PayoutMethod, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var m model.PayoutMethod
	if err := a.ep.Post(ctx, "/methods", req, transport.Raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
