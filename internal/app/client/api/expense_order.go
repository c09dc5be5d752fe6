package api

import (
	"context"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type ExpenseFilter struct {
	Status    model.ExpenseStatus
	FundID    string
	ChannelID string
}

func (f ExpenseFilter) apply(q *query) *query {
	return q.
		str("status", string(f.Status)).
		str("fundId", f.FundID).
		str("channelId", f.ChannelID)
}

// ExpenseOrderAPI — /api/expense-orders
type ExpenseOrderAPI struct {
	ep *transport.Endpoint
}

func NewExpenseOrderAPI(t *transport.Client, s session.Session) *ExpenseOrderAPI {
	return &ExpenseOrderAPI{ep: t.Bind(s, "/api/expense-orders")}
}

func (a *ExpenseOrderAPI) GetExpenseOrders(ctx context.Context, filter ExpenseFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.ExpenseOrder], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := filter.apply(newQuery()).page(page)
	return transport.List[model.ExpenseOrder](ctx, a.ep, "", q.values(), transport.MetaKey)
}

func (a *ExpenseOrderAPI) GetPending(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.ExpenseOrder], error) {
	return a.GetExpenseOrders(ctx, ExpenseFilter{Status: model.ExpenseSubmitted}, page)
}

func (a *ExpenseOrderAPI) GetExpenseOrder(ctx context.Context, id string) (*model.ExpenseOrder, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var o model.ExpenseOrder
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (a *ExpenseOrderAPI) CreateExpenseOrder(ctx context.Context, req model.ExpenseOrderRequest) (*model.ExpenseOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var o model.ExpenseOrder
	if err := a.ep.Post(ctx, "", req, transport.Raw, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (a *ExpenseOrderAPI) UpdateExpenseOrder(ctx context.Context, id string, req model.ExpenseOrderRequest) (*model.ExpenseOrder, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	var o model.ExpenseOrder
	if err := a.ep.Put(ctx, "/"+url.PathEscape(id), req, transport.Raw, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (a *ExpenseOrderAPI) SubmitExpenseOrder(ctx context.Context, id string) (*model.ExpenseOrder, error) {
	return a.action(ctx, id, "submit")
}

func (a *ExpenseOrderAPI) CancelExpenseOrder(ctx context.Context, id string) (*model.ExpenseOrder, error) {
	return a.action(ctx, id, "cancel")
}

func (a *ExpenseOrderAPI) action(ctx context.Context, id, action string) (*model.ExpenseOrder, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var o model.ExpenseOrder
	if err := a.ep.Post(ctx, "/"+url.PathEscape(id)+"/"+action, nil, transport.Raw, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
