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

// ChannelFilter — фильтр каталога каналов
type ChannelFilter struct {
	Search     string `json:"search,omitempty"`
	Category   string `json:"category,omitempty"`
	Sort       string `json:"sort,omitempty" validate:"omitempty,oneof=popular latest name"`
	Verified   bool   `json:"verified,omitempty"`
	Subscribed bool   `json:"subscribed,omitempty"`
	Mine       bool   `json:"mine,omitempty"`
}

func (f ChannelFilter) apply(q *query) *query {
	return q.
		str("search", f.Search).
		str("category", f.Category).
		str("sort", f.Sort).
		flag("verified", f.Verified).
		flag("subscribed", f.Subscribed).
		flag("mine", f.Mine)
}

// ChannelAPI — /api/channels; метаданные коллекций приходят в поле "metadata"
type ChannelAPI struct {
	ep *transport.Endpoint
}

func NewChannelAPI(t *transport.Client, s session.Session) *ChannelAPI {
	return &ChannelAPI{ep: t.Bind(s, "/api/channels")}
}

func (a *ChannelAPI) GetChannels(ctx context.Context, filter ChannelFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Channel], error) {
	if err := validate(filter); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := filter.apply(newQuery()).page(page)
	return transport.List[model.Channel](ctx, a.ep, "", q.values(), transport.MetadataKey)
}

func (a *ChannelAPI) GetPopular(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Channel], error) {
	return a.GetChannels(ctx, ChannelFilter{Sort: "popular"}, page)
}

func (a *ChannelAPI) GetSubscribed(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Channel], error) {
	return a.GetChannels(ctx, ChannelFilter{Subscribed: true}, page)
}

func (a *ChannelAPI) GetMine(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Channel], error) {
	return a.GetChannels(ctx, ChannelFilter{Mine: true}, page)
}

func (a *ChannelAPI) GetChannel(ctx context.Context, id string) (*model.Channel, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var c model.Channel
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *ChannelAPI) GetBySlug(ctx context.Context, slug string) (*model.Channel, error) {
	if err := requireID("slug", slug); err != nil {
		return nil, err
	}
	var c model.Channel
	if err := a.ep.Get(ctx, "/slug/"+url.PathEscape(slug), nil, transport.Raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *ChannelAPI) CreateChannel(ctx context.Context, req model.CreateChannelRequest) (*model.Channel, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var c model.Channel
	if err := a.ep.Post(ctx, "", req, transport.Raw, &c); err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}
	return &c, nil
}

func (a *ChannelAPI) UpdateChannel(ctx context.Context, id string, req model.UpdateChannelRequest) (*model.Channel, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	var c model.Channel
	if err := a.ep.Patch(ctx, "/"+url.PathEscape(id), req, transport.Raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *ChannelAPI) DeleteChannel(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return a.ep.Remove(ctx, "/"+url.PathEscape(id), transport.Raw, nil)
}

// SubscriptionState — состояние подписки на канал после изменения
type SubscriptionState struct {
	Subscribed  bool `json:"subscribed"`
	Subscribers int  `json:"subscribers"`
}

// SubscribeToChannel оформляет бесплатную подписку на канал
func (a *ChannelAPI) SubscribeToChannel(ctx context.Context, id string) (*SubscriptionState, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var st SubscriptionState
	if err := a.ep.Post(ctx, "/"+url.PathEscape(id)+"/subscribe", nil, transport.Envelope, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Subscribe — устаревший псевдоним SubscribeToChannel.
//
// Deprecated: используйте SubscribeToChannel.
func (a *ChannelAPI) Subscribe(ctx context.Context, id string) (*SubscriptionState, error) {
	return a.SubscribeToChannel(ctx, id)
}

func (a *ChannelAPI) Unsubscribe(ctx context.Context, id string) (*SubscriptionState, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var st SubscriptionState
	if err := a.ep.Remove(ctx, "/"+url.PathEscape(id)+"/subscribe", transport.Envelope, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (a *ChannelAPI) GetTiers(ctx context.Context, channelID string) ([]model.Tier, error) {
	if err := requireID("channelId", channelID); err != nil {
		return nil, err
	}
	tiers := []model.Tier{}
	if err := a.ep.Get(ctx, "/"+url.PathEscape(channelID)+"/tiers", nil, transport.Raw, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func (a *ChannelAPI) CreateTier(ctx context.Context, channelID string, req model.TierRequest) (*model.Tier, error) {
	if err := requireID("channelId", channelID); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	var t model.Tier
	if err := a.ep.Post(ctx, "/"+url.PathEscape(channelID)+"/tiers", req, transport.Raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *ChannelAPI) UpdateTier(ctx context.Context, channelID, tierID string, req model.TierRequest) (*model.Tier, error) {
	if err := requireID("channelId", channelID); err != nil {
		return nil, err
	}
	if err := requireID("tierId", tierID); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	var t model.Tier
	path := "/" + url.PathEscape(channelID) + "/tiers/" + url.PathEscape(tierID)
	if err := a.ep.Put(ctx, path, req, transport.Raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *ChannelAPI) DeleteTier(ctx context.Context, channelID, tierID string) error {
	if err := requireID("channelId", channelID); err != nil {
		return err
	}
	if err := requireID("tierId", tierID); err != nil {
		return err
	}
	return a.ep.Remove(ctx, "/"+url.PathEscape(channelID)+"/tiers/"+url.PathEscape(tierID), transport.Raw, nil)
}

func (a *ChannelAPI) GetSubscribers(ctx context.Context, channelID string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Subscriber], error) {
	if err := requireID("channelId", channelID); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	path := "/" + url.PathEscape(channelID) + "/subscribers"
	return transport.List[model.Subscriber](ctx, a.ep, path, newQuery().page(page).values(), transport.MetadataKey)
}
