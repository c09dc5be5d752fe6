package funding

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/model"
)

type Store interface {
	FundForContent(contentType, contentID string) (model.Fund, error)
}

type Handler struct {
	store      Store
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(store Store, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log.With(slog.String("component", "funding_handler")),
		middleware: middleware,
	}
}

type contentInput struct {
	Type string `path:"type" enum:"news,channel,poll"`
	ID   string `path:"id"`
}

type fundOutput struct {
	Body model.Fund
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "funding-for-content",
		Method:      http.MethodGet,
		Path:        "/api/funding/content/{type}/{id}",
		Summary:     "Сбор, привязанный к контенту",
		Tags:        []string{"funding"},
		Middlewares: h.middleware,
	}, h.forContent)
}

// forContent отдает сбор без конверта; отсутствие сбора — 404
func (h *Handler) forContent(_ context.Context, input *contentInput) (*fundOutput, error) {
	fund, err := h.store.FundForContent(input.Type, input.ID)
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	return &fundOutput{Body: fund}, nil
}
