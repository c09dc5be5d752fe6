package api

import (
	"context"
	"fmt"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/model"
)

// SubscriptionAPI — /api/subscriptions, платные подписки на уровни каналов
type SubscriptionAPI struct {
	ep *transport.Endpoint
}

func NewSubscriptionAPI(t *transport.Client, s session.Session) *SubscriptionAPI {
	return &SubscriptionAPI{ep: t.Bind(s, "/api/subscriptions")}
}

func (a *SubscriptionAPI) GetMySubscriptions(ctx context.Context, status model.SubscriptionStatus) ([]model.Subscription, error) {
	q := newQuery().str("status", string(status))
	subs := []model.Subscription{}
	if err := a.ep.Get(ctx, "", q.values(), transport.Raw, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (a *SubscriptionAPI) GetSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var s model.Subscription
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *SubscriptionAPI) CreateSubscription(ctx context.Context, req model.CreateSubscriptionRequest) (*model.Subscription, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var s model.Subscription
	if err := a.ep.Post(ctx, "", req, transport.Raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *SubscriptionAPI) CancelSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var s model.Subscription
	if err := a.ep.Post(ctx, "/"+url.PathEscape(id)+"/cancel", nil, transport.Raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ChangeTier переводит подписку на другой уровень: сначала отмена текущей,
// затем создание новой. Если отмена не удалась, новая не создается.
func (a *SubscriptionAPI) ChangeTier(ctx context.Context, current *model.Subscription, tierID, provider string) (*model.Subscription, error) {
	if current == nil {
		return nil, fmt.Errorf("%w: current subscription is required", ErrInvalidRequest)
	}
	req := model.CreateSubscriptionRequest{
		ChannelID: current.ChannelID,
		TierID:    tierID,
		Provider:  provider,
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := a.CancelSubscription(ctx, current.ID); err != nil {
		return nil, fmt.Errorf("cancel current subscription: %w", err)
	}
	s, err := a.CreateSubscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create subscription for tier %s: %w", tierID, err)
	}
	return s, nil
}
