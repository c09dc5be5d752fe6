package news

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/app/server/store"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type Store interface {
	News(q store.NewsQuery) ([]model.News, int)
	NewsItem(id string) (model.News, error)
}

type Handler struct {
	store      Store
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store Store, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log.With(slog.String("component", "news_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getBySlugOp(), h.get)
	huma.Register(api, h.getOp(), h.get)
}

func (h *Handler) list(_ context.Context, input *listInput) (*listOutput, error) {
	items, total := h.store.News(store.NewsQuery{
		Search:    input.Search,
		Category:  input.Category,
		Tags:      input.Tags,
		ChannelID: input.ChannelID,
		AuthorID:  input.AuthorID,
		Status:    model.NewsStatus(input.Status),
		Sort:      input.Sort,
		Featured:  input.Featured,
		Page:      input.Page,
		Limit:     input.Limit,
	})
	return &listOutput{Body: NewsListResponse{
		Items: items,
		Meta:  pagination.NewOffsetMeta(total, input.Page, input.Limit),
	}}, nil
}

func (h *Handler) get(_ context.Context, input *idInput) (*newsOutput, error) {
	n, err := h.store.NewsItem(input.ID)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	return &newsOutput{Body: n}, nil
}
