// Package push доставляет внеполосные события уведомлений через Redis pub/sub.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

// Виды событий
const (
	KindCreated = "notification.created"
	KindRead    = "notification.read"
	KindReadAll = "notification.read_all"
	KindDeleted = "notification.deleted"
)

const DefaultPrefix = "pressroom:notifications:"

var ErrInvalidEvent = errors.New("invalid push event")

// Event — событие {"kind","notificationId","userId","createdAt"}
type Event struct {
	Kind           string    `json:"kind"`
	NotificationID string    `json:"notificationId,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Channel — имя канала пользователя
func Channel(prefix, userID string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + userID
}

func parseEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	switch ev.Kind {
	case KindCreated, KindRead, KindReadAll, KindDeleted:
	default:
		return Event{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, ev.Kind)
	}
	if ev.Kind != KindReadAll && strings.TrimSpace(ev.NotificationID) == "" {
		return Event{}, fmt.Errorf("%w: notificationId is required for %s", ErrInvalidEvent, ev.Kind)
	}
	return ev, nil
}

// Connect создает клиент Redis и проверяет соединение
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Subscriber слушает канал одного пользователя
type Subscriber struct {
	rdb     redis.UniversalClient
	channel string
	log     *slog.Logger
}

func NewSubscriber(rdb redis.UniversalClient, prefix, userID string, log *slog.Logger) *Subscriber {
	ch := Channel(prefix, userID)
	return &Subscriber{
		rdb:     rdb,
		channel: ch,
		log:     log.With(slog.String("component", "push"), slog.String("channel", ch)),
	}
}

// Subscribe подписывается на канал. Канал событий закрывается, когда ctx завершен.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan Event, error) {
	ps := s.rdb.Subscribe(ctx, s.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", s.channel, err)
	}

	out := make(chan Event)
	go func() {
		defer ps.Close()
		s.pump(ctx, ps.Channel(), out)
	}()
	return out, nil
}

// pump переводит сообщения Redis в события; некорректные пропускаются
func (s *Subscriber) pump(ctx context.Context, in <-chan *redis.Message, out chan<- Event) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			ev, err := parseEvent(msg.Payload)
			if err != nil {
				s.log.Warn("skip push message", slog.String("error", err.Error()))
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Publisher публикует события в каналы пользователей
type Publisher struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewPublisher(rdb redis.UniversalClient, prefix string) *Publisher {
	return &Publisher{rdb: rdb, prefix: prefix}
}

func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	if ev.UserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidEvent)
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal push event: %w", err)
	}
	if err := p.rdb.Publish(ctx, Channel(p.prefix, ev.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish push event: %w", err)
	}
	return nil
}
