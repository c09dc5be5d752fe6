package channel

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api/http/middleware/auth"
	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/app/server/store"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type Store interface {
	Channels(userID string, q store.ChannelQuery) ([]model.Channel, int)
	Channel(userID, id string) (model.Channel, error)
	SetSubscribed(userID, channelID string, subscribed bool) (bool, int, error)
}

type Handler struct {
	store   Store
	log     *slog.Logger
	public  huma.Middlewares
	private huma.Middlewares
}

func NewHandler(store Store, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		store:   store,
		log:     log.With(slog.String("component", "channel_handler")),
		public:  public,
		private: private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.subscribeOp(), h.subscribe)
	huma.Register(api, h.unsubscribeOp(), h.unsubscribe)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	items, total := h.store.Channels(auth.UserID(ctx), store.ChannelQuery{
		Search:     input.Search,
		Category:   input.Category,
		Sort:       input.Sort,
		Verified:   input.Verified,
		Subscribed: input.Subscribed,
		Mine:       input.Mine,
		Page:       input.Page,
		Limit:      input.Limit,
	})
	return &listOutput{Body: ChannelListResponse{
		Items:    items,
		Metadata: pagination.NewOffsetMeta(total, input.Page, input.Limit),
	}}, nil
}

func (h *Handler) get(ctx context.Context, input *idInput) (*channelOutput, error) {
	c, err := h.store.Channel(auth.UserID(ctx), input.ID)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	return &channelOutput{Body: c}, nil
}

func (h *Handler) subscribe(ctx context.Context, input *idInput) (*subscriptionOutput, error) {
	return h.setSubscribed(ctx, input.ID, true)
}

func (h *Handler) unsubscribe(ctx context.Context, input *idInput) (*subscriptionOutput, error) {
	return h.setSubscribed(ctx, input.ID, false)
}

func (h *Handler) setSubscribed(ctx context.Context, channelID string, subscribed bool) (*subscriptionOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	state, count, err := h.store.SetSubscribed(userID, channelID, subscribed)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	h.log.Debug("subscription changed",
		slog.String("user_id", userID),
		slog.String("channel_id", channelID),
		slog.Bool("subscribed", state),
	)
	return &subscriptionOutput{Body: respond.OK(SubscriptionState{
		Subscribed:  state,
		Subscribers: count,
	})}, nil
}
