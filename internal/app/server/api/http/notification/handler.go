package notification

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api/http/middleware/auth"
	"pressroom/internal/app/server/api/http/respond"
	"pressroom/internal/app/server/store"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/infrastructure/push"
	"pressroom/internal/model"
)

type Store interface {
	Notifications(userID string, q store.NotificationQuery) (pagination.CursorPage[model.Notification], error)
	AddNotification(userID string, n model.Notification) model.Notification
	MarkRead(userID, id string) error
	MarkAllRead(userID string) int
	DeleteNotification(userID, id string) error
	UnreadCount(userID string) int
	NewCount(userID string) int
	MarkChecked(userID string)
	RegisterDevice(userID, token, platform string)
}

// Publisher доставляет push-события клиентам
type Publisher interface {
	Publish(ctx context.Context, ev push.Event) error
}

type Handler struct {
	store      Store
	publisher  Publisher
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler; publisher может быть nil, тогда события не публикуются
func NewHandler(store Store, publisher Publisher, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		publisher:  publisher,
		log:        log.With(slog.String("component", "notification_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.unreadCountOp(), h.unreadCount)
	huma.Register(api, h.newCountOp(), h.newCount)
	huma.Register(api, h.markAllReadOp(), h.markAllRead)
	huma.Register(api, h.checkedOp(), h.checked)
	huma.Register(api, h.devicesOp(), h.registerDevice)
	huma.Register(api, h.markReadOp(), h.markRead)
	huma.Register(api, h.deleteOp(), h.delete)
}

// publish не влияет на ответ: push — только подсказка клиенту перечитать данные
func (h *Handler) publish(ctx context.Context, kind, userID, notificationID string) {
	if h.publisher == nil {
		return
	}
	err := h.publisher.Publish(ctx, push.Event{
		Kind:           kind,
		NotificationID: notificationID,
		UserID:         userID,
	})
	if err != nil {
		h.log.Warn("publish push event failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
	}
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if input.After != "" && input.Before != "" {
		return nil, respond.FromDomain(pagination.ErrMixedCursors)
	}
	page, err := h.store.Notifications(userID, store.NotificationQuery{
		Limit:      input.Limit,
		After:      input.After,
		Before:     input.Before,
		UnreadOnly: input.Unread,
		Type:       model.NotificationType(input.Type),
	})
	if err != nil {
		return nil, respond.FromDomain(err)
	}
	return &listOutput{Body: page}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*notificationOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	n := h.store.AddNotification(userID, model.Notification{
		Type:  input.Body.Type,
		Title: input.Body.Title,
		Body:  input.Body.Body,
		Link:  input.Body.Link,
	})
	h.publish(ctx, push.KindCreated, userID, n.ID)
	return &notificationOutput{Body: respond.OK(n)}, nil
}

func (h *Handler) unreadCount(ctx context.Context, _ *emptyInput) (*countOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	return &countOutput{Body: respond.OK(respond.Count{Count: h.store.UnreadCount(userID)})}, nil
}

func (h *Handler) newCount(ctx context.Context, _ *emptyInput) (*countOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	return &countOutput{Body: respond.OK(respond.Count{Count: h.store.NewCount(userID)})}, nil
}

func (h *Handler) markRead(ctx context.Context, input *idInput) (*emptyOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.store.MarkRead(userID, input.ID); err != nil {
		return nil, respond.FromDomain(err)
	}
	h.publish(ctx, push.KindRead, userID, input.ID)
	return &emptyOutput{Body: respond.OK[*respond.Empty](nil)}, nil
}

func (h *Handler) markAllRead(ctx context.Context, _ *emptyInput) (*countOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	count := h.store.MarkAllRead(userID)
	h.publish(ctx, push.KindReadAll, userID, "")
	return &countOutput{Body: respond.OK(respond.Count{Count: count})}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*emptyOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.store.DeleteNotification(userID, input.ID); err != nil {
		return nil, respond.FromDomain(err)
	}
	h.publish(ctx, push.KindDeleted, userID, input.ID)
	return &emptyOutput{Body: respond.OK[*respond.Empty](nil)}, nil
}

func (h *Handler) checked(ctx context.Context, _ *emptyInput) (*emptyOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	h.store.MarkChecked(userID)
	return &emptyOutput{Body: respond.OK[*respond.Empty](nil)}, nil
}

func (h *Handler) registerDevice(ctx context.Context, input *deviceInput) (*emptyOutput, error) {
	userID, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := respond.Check(input.Body); err != nil {
		return nil, err
	}
	h.store.RegisterDevice(userID, input.Body.Token, input.Body.Platform)
	h.log.Debug("device registered", slog.String("platform", input.Body.Platform))
	return &emptyOutput{Body: respond.OK[*respond.Empty](nil)}, nil
}
