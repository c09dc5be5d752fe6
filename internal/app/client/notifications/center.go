// Package notifications — состояние ленты уведомлений с оптимистичными
// отметками и откатом при ошибке сервера.
package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"pressroom/internal/app/client/api"
	"pressroom/internal/app/client/paging"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/infrastructure/push"
	"pressroom/internal/model"
)

// Service — часть NotificationAPI, нужная ленте
type Service interface {
	List(ctx context.Context, filter api.NotificationFilter, page pagination.CursorRequest) (*pagination.CursorPage[model.Notification], error)
	GetUnreadCount(ctx context.Context) (int, error)
	GetNewCount(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	MarkAsChecked(ctx context.Context) error
}

var _ Service = (*api.NotificationAPI)(nil)

// Provider отдает актуальный ресурс; вызывается на каждую операцию,
// чтобы не держать ссылку дольше смены токена
type Provider func() Service

// EventSource — источник push-событий
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan push.Event, error)
}

type Option func(*Center)

func WithLimit(limit int) Option {
	return func(c *Center) { c.limit = limit }
}

func WithFilter(f api.NotificationFilter) Option {
	return func(c *Center) { c.filter = f }
}

func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// WithEventHook вызывается после обработки каждого push-события
func WithEventHook(fn func(ev push.Event)) Option {
	return func(c *Center) { c.onEvent = fn }
}

// Center — лента уведомлений одной поверхности: создается при открытии,
// отбрасывается при закрытии
type Center struct {
	provider Provider
	log      *slog.Logger
	now      func() time.Time
	limit    int
	filter   api.NotificationFilter
	feed     *paging.CursorLoader[model.Notification]
	onEvent  func(ev push.Event)

	mu      sync.Mutex
	pending map[string]int
	unread  int
	badge   int
}

func NewCenter(provider Provider, log *slog.Logger, opts ...Option) *Center {
	c := &Center{
		provider: provider,
		log:      log.With(slog.String("component", "notifications")),
		now:      time.Now,
		limit:    pagination.DefaultLimit,
		pending:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.feed = paging.NewCursorLoader(func(ctx context.Context, req pagination.CursorRequest) (*pagination.CursorPage[model.Notification], error) {
		return c.provider().List(ctx, c.filter, req)
	}, c.limit)
	return c
}

// Feed — загрузчик ленты для отображения
func (c *Center) Feed() paging.Loader[model.Notification] {
	return c.feed
}

func (c *Center) Items() []model.Notification {
	return c.feed.Items()
}

// Reload загружает ленту с начала
func (c *Center) Reload(ctx context.Context) error {
	return c.feed.Reload(ctx)
}

func (c *Center) LoadMore(ctx context.Context) error {
	return c.feed.LoadMore(ctx)
}

// Unread — число непрочитанных
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// Badge — число новых с последнего просмотра
func (c *Center) Badge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.badge
}

// Pending — число незавершенных мутаций элемента
func (c *Center) Pending(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[id]
}

func (c *Center) begin(id string) {
	c.mu.Lock()
	c.pending[id]++
	c.mu.Unlock()
}

func (c *Center) end(id string) {
	c.mu.Lock()
	c.pending[id]--
	if c.pending[id] <= 0 {
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

func (c *Center) addUnread(delta int) {
	c.mu.Lock()
	c.unread += delta
	if c.unread < 0 {
		c.unread = 0
	}
	c.mu.Unlock()
}

// RefreshCounts перечитывает счетчики непрочитанных и новых
func (c *Center) RefreshCounts(ctx context.Context) error {
	svc := c.provider()
	unread, err := svc.GetUnreadCount(ctx)
	if err != nil {
		return err
	}
	badge, err := svc.GetNewCount(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.unread = unread
	c.badge = badge
	c.mu.Unlock()
	return nil
}

// Refresh — полная перезагрузка ленты и счетчиков
func (c *Center) Refresh(ctx context.Context) error {
	return errors.Join(c.feed.Reload(ctx), c.RefreshCounts(ctx))
}

// Open — поверхность открыта: обновить бейдж и отметить просмотр.
// Бейдж обнуляется сразу и восстанавливается, если сервер не принял отметку.
func (c *Center) Open(ctx context.Context) error {
	if err := c.RefreshCounts(ctx); err != nil {
		return err
	}
	return c.MarkChecked(ctx)
}

func (c *Center) MarkChecked(ctx context.Context) error {
	c.mu.Lock()
	prev := c.badge
	c.badge = 0
	c.mu.Unlock()

	if err := c.provider().MarkAsChecked(ctx); err != nil {
		c.mu.Lock()
		c.badge = prev
		c.mu.Unlock()
		c.log.Debug("mark checked failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// MarkAsRead отмечает уведомление прочитанным локально, затем на сервере.
// При ошибке восстанавливаются прежние IsRead и ReadAt этого элемента.
func (c *Center) MarkAsRead(ctx context.Context, id string) error {
	var (
		found    bool
		prevRead bool
		prevAt   *time.Time
	)
	stamp := c.now()

	c.feed.Update(func(items []model.Notification) []model.Notification {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			found = true
			prevRead, prevAt = items[i].IsRead, items[i].ReadAt
			items[i].IsRead = true
			items[i].ReadAt = &stamp
			break
		}
		return items
	})
	wasUnread := found && !prevRead
	if wasUnread {
		c.addUnread(-1)
	}

	c.begin(id)
	err := c.provider().MarkAsRead(ctx, id)
	c.end(id)
	if err == nil {
		return nil
	}

	c.log.Debug("mark as read failed, rolling back",
		slog.String("id", id),
		slog.String("error", err.Error()),
	)
	if found {
		c.feed.Update(func(items []model.Notification) []model.Notification {
			for i := range items {
				if items[i].ID == id {
					items[i].IsRead = prevRead
					items[i].ReadAt = prevAt
					break
				}
			}
			return items
		})
	}
	if wasUnread {
		c.addUnread(1)
	}
	return err
}

// MarkAllAsRead отмечает все загруженные элементы. При ошибке лента
// перезагружается с сервера; если и это не удалось, восстанавливается снимок.
func (c *Center) MarkAllAsRead(ctx context.Context) error {
	var snapshot []model.Notification
	stamp := c.now()

	c.feed.Update(func(items []model.Notification) []model.Notification {
		snapshot = make([]model.Notification, len(items))
		copy(snapshot, items)
		for i := range items {
			if !items[i].IsRead {
				items[i].IsRead = true
				items[i].ReadAt = &stamp
			}
		}
		return items
	})
	c.mu.Lock()
	prevUnread := c.unread
	c.unread = 0
	c.mu.Unlock()

	_, err := c.provider().MarkAllAsRead(ctx)
	if err == nil {
		return nil
	}

	c.log.Debug("mark all as read failed, refreshing", slog.String("error", err.Error()))
	c.recover(ctx, snapshot, prevUnread)
	return err
}

// Delete удаляет уведомление локально, затем на сервере.
// При ошибке лента перезагружается с сервера.
func (c *Center) Delete(ctx context.Context, id string) error {
	var (
		snapshot  []model.Notification
		wasUnread bool
	)
	c.feed.Update(func(items []model.Notification) []model.Notification {
		snapshot = make([]model.Notification, len(items))
		copy(snapshot, items)
		out := items[:0]
		for _, n := range items {
			if n.ID == id {
				wasUnread = !n.IsRead
				continue
			}
			out = append(out, n)
		}
		return out
	})
	c.mu.Lock()
	prevUnread := c.unread
	c.mu.Unlock()
	if wasUnread {
		c.addUnread(-1)
	}

	c.begin(id)
	err := c.provider().Delete(ctx, id)
	c.end(id)
	if err == nil {
		return nil
	}

	c.log.Debug("delete failed, refreshing", slog.String("id", id), slog.String("error", err.Error()))
	c.recover(ctx, snapshot, prevUnread)
	return err
}

// recover перечитывает ленту с сервера. Снимок возвращается, только если
// не удалось загрузить саму ленту; свежая лента снимком не затирается.
func (c *Center) recover(ctx context.Context, snapshot []model.Notification, prevUnread int) {
	if err := c.feed.Reload(ctx); err != nil {
		c.log.Warn("reload after failed mutation failed, restoring snapshot", slog.String("error", err.Error()))
		c.feed.Update(func([]model.Notification) []model.Notification {
			return snapshot
		})
		c.mu.Lock()
		c.unread = prevUnread
		c.mu.Unlock()
		return
	}

	if err := c.RefreshCounts(ctx); err != nil {
		c.log.Warn("counts refresh after failed mutation failed", slog.String("error", err.Error()))
		c.mu.Lock()
		c.unread = prevUnread
		c.mu.Unlock()
	}
}

// HandlePush обновляет состояние по push-событию
func (c *Center) HandlePush(ctx context.Context, ev push.Event) error {
	switch ev.Kind {
	case push.KindCreated:
		return c.RefreshCounts(ctx)
	case push.KindRead, push.KindReadAll, push.KindDeleted:
		return c.Refresh(ctx)
	}
	return nil
}

// Listen обрабатывает события до завершения ctx или закрытия источника
func (c *Center) Listen(ctx context.Context, src EventSource) error {
	events, err := src.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := c.HandlePush(ctx, ev); err != nil {
				c.log.Warn("handle push event failed",
					slog.String("kind", ev.Kind),
					slog.String("error", err.Error()),
				)
				continue
			}
			if c.onEvent != nil {
				c.onEvent(ev)
			}
		}
	}
}
