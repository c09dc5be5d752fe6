package api

import (
	"context"
	"fmt"
	"strings"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

// Типы сущностей поиска
const (
	SearchNews     = "news"
	SearchChannels = "channels"
	SearchUsers    = "users"
	SearchTags     = "tags"
)

// SearchAPI — /api/search, ответы в конверте
type SearchAPI struct {
	ep *transport.Endpoint
}

func NewSearchAPI(t *transport.Client, s session.Session) *SearchAPI {
	return &SearchAPI{ep: t.Bind(s, "/api/search")}
}

// Search ищет по всем или по перечисленным типам сущностей
func (a *SearchAPI) Search(ctx context.Context, text string, types []string, page pagination.OffsetRequest) (*model.SearchResults, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := newQuery().str("q", text).list("types", types).page(page)
	var res model.SearchResults
	if err := a.ep.Get(ctx, "", q.values(), transport.Envelope, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Suggest возвращает подсказки автодополнения
func (a *SearchAPI) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}
	q := newQuery().str("q", prefix).integer("limit", limit)
	out := []string{}
	if err := a.ep.Get(ctx, "/suggest", q.values(), transport.Envelope, &out); err != nil {
		return nil, err
	}
	return out, nil
}
