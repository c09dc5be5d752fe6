package api

import (
	"context"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

// Периоды статистики студии
const (
	PeriodWeek  = "7d"
	PeriodMonth = "30d"
	PeriodYear  = "365d"
)

// StudioAPI — /api/studio, кабинет автора
type StudioAPI struct {
	ep *transport.Endpoint
}

func NewStudioAPI(t *transport.Client, s session.Session) *StudioAPI {
	return &StudioAPI{ep: t.Bind(s, "/api/studio")}
}

func (a *StudioAPI) GetStats(ctx context.Context, channelID, period string) (*model.StudioStats, error) {
	q := newQuery().str("channelId", channelID).str("period", period)
	var st model.StudioStats
	if err := a.ep.Get(ctx, "/stats", q.values(), transport.Envelope, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetMyNews — материалы автора с тем же фильтром, что и лента
func (a *StudioAPI) GetMyNews(ctx context.Context, filter NewsFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.News], error) {
	q, err := newsQuery(filter, page)
	if err != nil {
		return nil, err
	}
	return transport.List[model.News](ctx, a.ep, "/news", q, transport.MetaKey)
}

func (a *StudioAPI) GetEarnings(ctx context.Context, period string) (*model.Earnings, error) {
	var e model.Earnings
	if err := a.ep.Get(ctx, "/earnings", newQuery().str("period", period).values(), transport.Envelope, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (a *StudioAPI) GetAudience(ctx context.Context, channelID string) (*model.Audience, error) {
	var au model.Audience
	if err := a.ep.Get(ctx, "/audience", newQuery().str("channelId", channelID).values(), transport.Envelope, &au); err != nil {
		return nil, err
	}
	return &au, nil
}
