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

// Значения сортировки новостей
const (
	SortLatest   = "latest"
	SortTrending = "trending"
	SortPopular  = "popular"
	SortOldest   = "oldest"
)

// NewsFilter — фильтр ленты новостей; незаданные поля не отправляются
type NewsFilter struct {
	Search    string           `json:"search,omitempty"`
	Category  string           `json:"category,omitempty"`
	Tags      []string         `json:"tags,omitempty"`
	ChannelID string           `json:"channelId,omitempty"`
	AuthorID  string           `json:"authorId,omitempty"`
	Status    model.NewsStatus `json:"status,omitempty" validate:"omitempty,oneof=draft pending published rejected archived"`
	Sort      string           `json:"sort,omitempty" validate:"omitempty,oneof=latest trending popular oldest"`
	Featured  bool             `json:"featured,omitempty"`
}

func (f NewsFilter) apply(q *query) *query {
	return q.
		str("search", f.Search).
		str("category", f.Category).
		list("tags", f.Tags).
		str("channelId", f.ChannelID).
		str("authorId", f.AuthorID).
		str("status", string(f.Status)).
		str("sort", f.Sort).
		flag("featured", f.Featured)
}

// NewsAPI — /api/news
type NewsAPI struct {
	ep *transport.Endpoint
}

func NewNewsAPI(t *transport.Client, s session.Session) *NewsAPI {
	return &NewsAPI{ep: t.Bind(s, "/api/news")}
}

// newsQuery проверяет фильтр и страницу и строит параметры
func newsQuery(filter NewsFilter, page pagination.OffsetRequest) (url.Values, error) {
	if err := validate(filter); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return filter.apply(newQuery()).page(page).values(), nil
}

// GetNews — общий метод фильтрации ленты; все удобные методы идут через него
func (a *NewsAPI) GetNews(ctx context.Context, filter NewsFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	q, err := newsQuery(filter, page)
	if err != nil {
		return nil, err
	}
	return transport.List[model.News](ctx, a.ep, "", q, transport.MetaKey)
}

func (a *NewsAPI) GetTrending(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	return a.GetNews(ctx, NewsFilter{Sort: SortTrending}, page)
}

func (a *NewsAPI) GetPopular(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	return a.GetNews(ctx, NewsFilter{Sort: SortPopular}, page)
}

func (a *NewsAPI) GetLatest(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	return a.GetNews(ctx, NewsFilter{Sort: SortLatest}, page)
}

func (a *NewsAPI) GetFeatured(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	return a.GetNews(ctx, NewsFilter{Featured: true}, page)
}

func (a *NewsAPI) GetByChannel(ctx context.Context, channelID string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	if err := requireID("channelId", channelID); err != nil {
		return nil, err
	}
	return a.GetNews(ctx, NewsFilter{ChannelID: channelID}, page)
}

func (a *NewsAPI) GetByTag(ctx context.Context, tag string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	if err := requireID("tag", tag); err != nil {
		return nil, err
	}
	return a.GetNews(ctx, NewsFilter{Tags: []string{tag}}, page)
}

func (a *NewsAPI) GetNewsByID(ctx context.Context, id string) (*model.News, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var n model.News
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (a *NewsAPI) GetBySlug(ctx context.Context, slug string) (*model.News, error) {
	if err := requireID("slug", slug); err != nil {
		return nil, err
	}
	var n model.News
	if err := a.ep.Get(ctx, "/slug/"+url.PathEscape(slug), nil, transport.Raw, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (a *NewsAPI) CreateNews(ctx context.Context, req model.CreateNewsRequest) (*model.News, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var n model.News
	if err := a.ep.Post(ctx, "", req, transport.Raw, &n); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return &n, nil
}

// Create — устаревший псевдоним CreateNews.
//
// Deprecated: используйте CreateNews.
func (a *NewsAPI) Create(ctx context.Context, req model.CreateNewsRequest) (*model.News, error) {
	return a.CreateNews(ctx, req)
}

func (a *NewsAPI) UpdateNews(ctx context.Context, id string, req model.UpdateNewsRequest) (*model.News, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	var n model.News
	if err := a.ep.Patch(ctx, "/"+url.PathEscape(id), req, transport.Raw, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (a *NewsAPI) DeleteNews(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return a.ep.Remove(ctx, "/"+url.PathEscape(id), transport.Raw, nil)
}

func (a *NewsAPI) Publish(ctx context.Context, id string) (*model.News, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var n model.News
	if err := a.ep.Post(ctx, "/"+url.PathEscape(id)+"/publish", nil, transport.Raw, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Reaction — счетчик и состояние реакции после изменения
type Reaction struct {
	Count  int  `json:"count"`
	Active bool `json:"active"`
}

func (a *NewsAPI) react(ctx context.Context, id, action string, on bool) (*Reaction, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	path := "/" + url.PathEscape(id) + "/" + action
	var r Reaction
	var err error
	if on {
		err = a.ep.Post(ctx, path, nil, transport.Raw, &r)
	} else {
		err = a.ep.Remove(ctx, path, transport.Raw, &r)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (a *NewsAPI) Like(ctx context.Context, id string) (*Reaction, error) {
	return a.react(ctx, id, "like", true)
}

func (a *NewsAPI) Unlike(ctx context.Context, id string) (*Reaction, error) {
	return a.react(ctx, id, "like", false)
}

func (a *NewsAPI) Bookmark(ctx context.Context, id string) (*Reaction, error) {
	return a.react(ctx, id, "bookmark", true)
}

func (a *NewsAPI) RemoveBookmark(ctx context.Context, id string) (*Reaction, error) {
	return a.react(ctx, id, "bookmark", false)
}

// RecordView фиксирует просмотр
func (a *NewsAPI) RecordView(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/"+url.PathEscape(id)+"/view", nil, transport.Raw, nil)
}
