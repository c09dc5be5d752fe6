package api

import (
	"context"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/model"
)

// TagAPI — /api/tags
type TagAPI struct {
	ep *transport.Endpoint
}

func NewTagAPI(t *transport.Client, s session.Session) *TagAPI {
	return &TagAPI{ep: t.Bind(s, "/api/tags")}
}

// GetTags ищет теги по префиксу; пустой поиск возвращает все
func (a *TagAPI) GetTags(ctx context.Context, search string, limit int) ([]model.Tag, error) {
	q := newQuery().str("search", search).integer("limit", limit)
	tags := []model.Tag{}
	if err := a.ep.Get(ctx, "", q.values(), transport.Raw, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (a *TagAPI) GetPopularTags(ctx context.Context, limit int) ([]model.Tag, error) {
	q := newQuery().integer("limit", limit)
	tags := []model.Tag{}
	if err := a.ep.Get(ctx, "/popular", q.values(), transport.Raw, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (a *TagAPI) GetTag(ctx context.Context, slug string) (*model.Tag, error) {
	if err := requireID("slug", slug); err != nil {
		return nil, err
	}
	var t model.Tag
	if err := a.ep.Get(ctx, "/"+url.PathEscape(slug), nil, transport.Raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

type createTagRequest struct {
	Name string `json:"name" validate:"required,max=40"`
}

func (a *TagAPI) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	req := createTagRequest{Name: name}
	if err := validate(req); err != nil {
		return nil, err
	}
	var t model.Tag
	if err := a.ep.Post(ctx, "", req, transport.Raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
