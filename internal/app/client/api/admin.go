package api

import (
	"context"
	"fmt"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type reasonRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func adminAction[T any](ctx context.Context, ep *transport.Endpoint, id, action string, body any) (*T, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if body != nil {
		if err := validate(body); err != nil {
			return nil, err
		}
	}
	var out T
	if err := ep.Post(ctx, "/"+url.PathEscape(id)+"/"+action, body, transport.Raw, &out); err != nil {
		return nil, fmt.Errorf("%s %s: %w", action, id, err)
	}
	return &out, nil
}

// AdminNewsAPI — /api/admin/news, модерация материалов
type AdminNewsAPI struct {
	ep *transport.Endpoint
}

func NewAdminNewsAPI(t *transport.Client, s session.Session) *AdminNewsAPI {
	return &AdminNewsAPI{ep: t.Bind(s, "/api/admin/news")}
}

func (a *AdminNewsAPI) List(ctx context.Context, filter NewsFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	q, err := newsQuery(filter, page)
	if err != nil {
		return nil, err
	}
	return transport.List[model.News](ctx, a.ep, "", q, transport.MetaKey)
}

func (a *AdminNewsAPI) Approve(ctx context.Context, id string) (*model.News, error) {
	return adminAction[model.News](ctx, a.ep, id, "approve", nil)
}

func (a *AdminNewsAPI) Reject(ctx context.Context, id, reason string) (*model.News, error) {
	return adminAction[model.News](ctx, a.ep, id, "reject", reasonRequest{Reason: reason})
}

type featureRequest struct {
	Featured bool `json:"featured"`
}

func (a *AdminNewsAPI) Feature(ctx context.Context, id string, featured bool) (*model.News, error) {
	return adminAction[model.News](ctx, a.ep, id, "feature", featureRequest{Featured: featured})
}

// AdminUserAPI — /api/admin/users
type AdminUserAPI struct {
	ep *transport.Endpoint
}

func NewAdminUserAPI(t *transport.Client, s session.Session) *AdminUserAPI {
	return &AdminUserAPI{ep: t.Bind(s, "/api/admin/users")}
}

type AdminUserFilter struct {
	Search string
	Role   model.Role
	Banned *bool
}

func (a *AdminUserAPI) List(ctx context.Context, filter AdminUserFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.User], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := newQuery().
		str("search", filter.Search).
		str("role", string(filter.Role)).
		optFlag("banned", filter.Banned).
		page(page)
	return transport.List[model.User](ctx, a.ep, "", q.values(), transport.MetaKey)
}

func (a *AdminUserAPI) Ban(ctx context.Context, id, reason string) (*model.User, error) {
	return adminAction[model.User](ctx, a.ep, id, "ban", reasonRequest{Reason: reason})
}

func (a *AdminUserAPI) Unban(ctx context.Context, id string) (*model.User, error) {
	return adminAction[model.User](ctx, a.ep, id, "unban", nil)
}

type roleRequest struct {
	Role model.Role `json:"role" validate:"required,oneof=reader creator editor admin"`
}

func (a *AdminUserAPI) SetRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	req := roleRequest{Role: role}
	if err := validate(req); err != nil {
		return nil, err
	}
	var u model.User
	if err := a.ep.Put(ctx, "/"+url.PathEscape(id)+"/role", req, transport.Raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminChannelAPI — /api/admin/channels
type AdminChannelAPI struct {
	ep *transport.Endpoint
}

func NewAdminChannelAPI(t *transport.Client, s session.Session) *AdminChannelAPI {
	return &AdminChannelAPI{ep: t.Bind(s, "/api/admin/channels")}
}

func (a *AdminChannelAPI) List(ctx context.Context, filter ChannelFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Channel], error) {
	if err := validate(filter); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := filter.apply(newQuery()).page(page)
	return transport.List[model.Channel](ctx, a.ep, "", q.values(), transport.MetadataKey)
}

func (a *AdminChannelAPI) Verify(ctx context.Context, id string) (*model.Channel, error) {
	return adminAction[model.Channel](ctx, a.ep, id, "verify", nil)
}

// AdminExpenseOrderAPI — /api/admin/expense-orders
type AdminExpenseOrderAPI struct {
	ep *transport.Endpoint
}

func NewAdminExpenseOrderAPI(t *transport.Client, s session.Session) *AdminExpenseOrderAPI {
	return &AdminExpenseOrderAPI{ep: t.Bind(s, "/api/admin/expense-orders")}
}

func (a *AdminExpenseOrderAPI) List(ctx context.Context, filter ExpenseFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.ExpenseOrder], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := filter.apply(newQuery()).page(page)
	return transport.List[model.ExpenseOrder](ctx, a.ep, "", q.values(), transport.MetaKey)
}

func (a *AdminExpenseOrderAPI) ApproveExpenseOrder(ctx context.Context, id string) (*model.ExpenseOrder, error) {
	return adminAction[model.ExpenseOrder](ctx, a.ep, id, "approve", nil)
}

func (a *AdminExpenseOrderAPI) RejectExpenseOrder(ctx context.Context, id, reason string) (*model.ExpenseOrder, error) {
	return adminAction[model.ExpenseOrder](ctx, a.ep, id, "reject", reasonRequest{Reason: reason})
}

// AdminPayoutAPI — /api/admin/payouts
type AdminPayoutAPI struct {
	ep *transport.Endpoint
}

func NewAdminPayoutAPI(t *transport.Client, s session.Session) *AdminPayoutAPI {
	return &AdminPayoutAPI{ep: t.Bind(s, "/api/admin/payouts")}
}

func (a *AdminPayoutAPI) List(ctx context.Context, status model.PayoutStatus, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Payout], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := newQuery().str("status", string(status)).page(page)
	return transport.List[model.Payout](ctx, a.ep, "", q.values(), transport.MetaKey)
}

func (a *AdminPayoutAPI) Approve(ctx context.Context, id string) (*model.Payout, error) {
	return adminAction[model.Payout](ctx, a.ep, id, "approve", nil)
}

func (a *AdminPayoutAPI) Reject(ctx context.Context, id, reason string) (*model.Payout, error) {
	return adminAction[model.Payout](ctx, a.ep, id, "reject", reasonRequest{Reason: reason})
}

type markPaidRequest struct {
	Reference string `json:"reference,omitempty" validate:"max=120"`
}

func (a *AdminPayoutAPI) MarkPaid(ctx context.Context, id, reference string) (*model.Payout, error) {
	return adminAction[model.Payout](ctx, a.ep, id, "mark-paid", markPaidRequest{Reference: reference})
}
