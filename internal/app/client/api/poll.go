package api

import (
	"context"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type PollFilter struct {
	NewsID    string
	ChannelID string
	Active    bool
}

// PollAPI — /api/polls
type PollAPI struct {
	ep *transport.Endpoint
}

func NewPollAPI(t *transport.Client, s session.Session) *PollAPI {
	return &PollAPI{ep: t.Bind(s, "/api/polls")}
}

func (a *PollAPI) GetPolls(ctx context.Context, filter PollFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Poll], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := newQuery().
		str("newsId", filter.NewsID).
		str("channelId", filter.ChannelID).
		flag("active", filter.Active).
		page(page)
	return transport.List[model.Poll](ctx, a.ep, "", q.values(), transport.MetaKey)
}

func (a *PollAPI) GetActive(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Poll], error) {
	return a.GetPolls(ctx, PollFilter{Active: true}, page)
}

func (a *PollAPI) GetByNews(ctx context.Context, newsID string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Poll], error) {
	if err := requireID("newsId", newsID); err != nil {
		return nil, err
	}
	return a.GetPolls(ctx, PollFilter{NewsID: newsID}, page)
}

func (a *PollAPI) GetPoll(ctx context.Context, id string) (*model.Poll, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var p model.Poll
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *PollAPI) CreatePoll(ctx context.Context, req model.CreatePollRequest) (*model.Poll, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var p model.Poll
	if err := a.ep.Post(ctx, "", req, transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type voteRequest struct {
	OptionIDs []string `json:"optionIds" validate:"min=1,dive,required"`
}

// Vote голосует за один или несколько вариантов
func (a *PollAPI) Vote(ctx context.Context, id string, optionIDs ...string) (*model.Poll, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	req := voteRequest{OptionIDs: optionIDs}
	if err := validate(req); err != nil {
		return nil, err
	}
	var p model.Poll
	if err := a.ep.Post(ctx, "/"+url.PathEscape(id)+"/vote", req, transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *PollAPI) RemoveVote(ctx context.Context, id string) (*model.Poll, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var p model.Poll
	if err := a.ep.Remove(ctx, "/"+url.PathEscape(id)+"/vote", transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *PollAPI) GetResults(ctx context.Context, id string) (*model.PollResults, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var r model.PollResults
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id)+"/results", nil, transport.Raw, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (a *PollAPI) ClosePoll(ctx context.Context, id string) (*model.Poll, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var p model.Poll
	if err := a.ep.Post(ctx, "/"+url.PathEscape(id)+"/close", nil, transport.Raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
