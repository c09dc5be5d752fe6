package api

import (
	"context"
	"net/url"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

// NotificationAPI — /api/notifications. Лента курсорная, счетчики и отметки в конверте.
type NotificationAPI struct {
	ep *transport.Endpoint
}

func NewNotificationAPI(t *transport.Client, s session.Session) *NotificationAPI {
	return &NotificationAPI{ep: t.Bind(s, "/api/notifications")}
}

// NotificationFilter — необязательные фильтры ленты
type NotificationFilter struct {
	UnreadOnly bool
	Type       model.NotificationType
}

// List возвращает страницу ленты; курсор передается как получен от сервера
func (a *NotificationAPI) List(ctx context.Context, filter NotificationFilter, page pagination.CursorRequest) (*pagination.CursorPage[model.Notification], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	q := newQuery().
		cursor(page).
		flag("unread", filter.UnreadOnly).
		str("type", string(filter.Type))
	return transport.Cursor[model.Notification](ctx, a.ep, "", q.values())
}

type countResponse struct {
	Count int `json:"count"`
}

func (a *NotificationAPI) GetUnreadCount(ctx context.Context) (int, error) {
	var c countResponse
	if err := a.ep.Get(ctx, "/unread-count", nil, transport.Envelope, &c); err != nil {
		return 0, err
	}
	return c.Count, nil
}

// GetNewCount — число уведомлений после последней отметки просмотра (бейдж)
func (a *NotificationAPI) GetNewCount(ctx context.Context) (int, error) {
	var c countResponse
	if err := a.ep.Get(ctx, "/new-count", nil, transport.Envelope, &c); err != nil {
		return 0, err
	}
	return c.Count, nil
}

func (a *NotificationAPI) MarkAsRead(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return a.ep.Patch(ctx, "/"+url.PathEscape(id)+"/read", nil, transport.Envelope, nil)
}

// MarkAllAsRead возвращает число помеченных на сервере
func (a *NotificationAPI) MarkAllAsRead(ctx context.Context) (int, error) {
	var c countResponse
	if err := a.ep.Patch(ctx, "/read-all", nil, transport.Envelope, &c); err != nil {
		return 0, err
	}
	return c.Count, nil
}

func (a *NotificationAPI) Delete(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return a.ep.Remove(ctx, "/"+url.PathEscape(id), transport.Envelope, nil)
}

// MarkAsChecked сбрасывает счетчик новых на сервере
func (a *NotificationAPI) MarkAsChecked(ctx context.Context) error {
	return a.ep.Post(ctx, "/checked", nil, transport.Envelope, nil)
}

func (a *NotificationAPI) RegisterDevice(ctx context.Context, req model.DeviceRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return a.ep.Post(ctx, "/devices", req, transport.Envelope, nil)
}
