package api

import (
	"context"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

// UserAPI — /api/users
type UserAPI struct {
	ep *transport.Endpoint
}

func NewUserAPI(t *transport.Client, s session.Session) *UserAPI {
	return &UserAPI{ep: t.Bind(s, "/api/users")}
}

// GetMe возвращает профиль текущего пользователя
func (a *UserAPI) GetMe(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := a.ep.Get(ctx, "/me", nil, transport.Raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UserAPI) UpdateMe(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var u model.User
	if err := a.ep.Patch(ctx, "/me", req, transport.Raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UserAPI) GetUser(ctx context.Context, id string) (*model.User, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var u model.User
	if err := a.ep.Get(ctx, "/"+url.PathEscape(id), nil, transport.Raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UserAPI) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := requireID("username", username); err != nil {
		return nil, err
	}
	var u model.User
	if err := a.ep.Get(ctx, "/username/"+url.PathEscape(username), nil, transport.Raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UserAPI) Follow(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/"+url.PathEscape(id)+"/follow", nil, transport.Raw, nil)
}

func (a *UserAPI) Unfollow(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return a.ep.Remove(ctx, "/"+url.PathEscape(id)+"/follow", transport.Raw, nil)
}

func (a *UserAPI) GetFollowers(ctx context.Context, id string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.User], error) {
	return a.relations(ctx, id, "followers", page)
}

func (a *UserAPI) GetFollowing(ctx context.Context, id string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.User], error) {
	return a.relations(ctx, id, "following", page)
}

func (a *UserAPI) relations(ctx context.Context, id, kind string, page pagination.OffsetRequest) (*pagination.OffsetPage[model.User], error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return transport.List[model.User](ctx, a.ep, "/"+url.PathEscape(id)+"/"+kind, newQuery().page(page).values(), transport.MetaKey)
}

// GetPreferences — настройки текущего пользователя на сервере (в конверте)
func (a *UserAPI) GetPreferences(ctx context.Context) (*model.Preferences, error) {
	var p model.Preferences
	if err := a.ep.Get(ctx, "/me/preferences", nil, transport.Envelope, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *UserAPI) UpdatePreferences(ctx context.Context, prefs model.Preferences) (*model.Preferences, error) {
	if err := validate(prefs); err != nil {
		return nil, err
	}
	var p model.Preferences
	if err := a.ep.Put(ctx, "/me/preferences", prefs, transport.Envelope, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
