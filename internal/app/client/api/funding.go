package api

import (
	"context"
	"net/http"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

type FundFilter struct {
	OwnerID     string
	ContentType string
	Active      bool
}

// FundingAPI — /api/funding
type FundingAPI struct {
	ep *transport.Endpoint
}

func NewFundingAPI(t *transport.Client, s session.Session) *FundingAPI {
	return &FundingAPI{ep: t.Bind(s, "/api/funding")}
}

func (a *FundingAPI) GetFunds(ctx context.Context, filter FundFilter, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Fund], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := newQuery().
		str("ownerId", filter.OwnerID).
		str("contentType", filter.ContentType).
		flag("active", filter.Active).
		page(page)
	return transport.List[model.Fund](ctx, a.ep, "", q.values(), transport.MetaKey)
}

func (a *FundingAPI) GetFund(ctx context.Context, id string) (*model.Fund, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var f model.Fund
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFundForContent возвращает сбор для контента или nil, если его нет (404).
// Любая другая ошибка возвращается как есть.
func (a *FundingAPI) GetFundForContent(ctx context.Context, contentType, contentID string) (*model.Fund, error) {
	if err := requireID("contentType", contentType); err != nil {
		return nil, err
	}
	if err := requireID("contentId", contentID); err != nil {
		return nil, err
	}
	var f model.Fund
	path := "/content/" + url.PathEscape(contentType) + "/" + url.PathEscape(contentID)
	if err := a.ep.Get(ctx, path, nil, transport.Raw, &f); err != nil {
		if transport.IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (a *FundingAPI) CreateFund(ctx context.Context, req model.CreateFundRequest) (*model.Fund, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var f model.Fund
	if err := a.ep.Post(ctx, "", req, transport.Raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (a *FundingAPI) Contribute(ctx context.Context, fundID string, req model.ContributionRequest) (*model.Contribution, error) {
	if err := requireID("fundId", fundID); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	var c model.Contribution
	if err := a.ep.Post(ctx, "/"+url.PathEscape(fundID)+"/contributions", req, transport.Raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *FundingAPI) GetContributions(ctx context.Context, fundID string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Contribution], error) {
	if err := requireID("fundId", fundID); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return transport.List[model.Contribution](ctx, a.ep, "/"+url.PathEscape(fundID)+"/contributions", newQuery().page(page).values(), transport.MetaKey)
}

func (a *FundingAPI) GetMyContributions(ctx context.Context, page pagination.OffsetRequest) (*pagination.OffsetPage[model.Contribution], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return transport.List[model.Contribution](ctx, a.ep, "/contributions/me", newQuery().page(page).values(), transport.MetaKey)
}
