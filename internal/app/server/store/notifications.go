package store

import (
	"fmt"
	"sort"

	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

// NotificationQuery — запрос страницы ленты уведомлений
type NotificationQuery struct {
	Limit      int
	After      string
	Before     string
	UnreadOnly bool
	Type       model.NotificationType
}

func keyOf(n *model.Notification) timeKey {
	return timeKey{at: n.CreatedAt, id: n.ID}
}

// AddNotification кладет уведомление в ленту пользователя
func (s *Store) AddNotification(userID string, n model.Notification) model.Notification {
	if n.ID == "" {
		n.ID = newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	feed := append(s.notifications[userID], &n)
	sort.SliceStable(feed, func(i, j int) bool {
		return keyOf(feed[i]).before(keyOf(feed[j]))
	})
	s.notifications[userID] = feed
	return n
}

// Notifications отдает курсорную страницу ленты (новые первыми)
func (s *Store) Notifications(userID string, q NotificationQuery) (pagination.CursorPage[model.Notification], error) {
	if q.After != "" && q.Before != "" {
		return pagination.CursorPage[model.Notification]{}, pagination.ErrMixedCursors
	}
	if q.Limit <= 0 {
		q.Limit = pagination.DefaultLimit
	}

	var after, before *timeKey
	if q.After != "" {
		k, err := parseTimeKey(q.After)
		if err != nil {
			return pagination.CursorPage[model.Notification]{}, err
		}
		after = &k
	}
	if q.Before != "" {
		k, err := parseTimeKey(q.Before)
		if err != nil {
			return pagination.CursorPage[model.Notification]{}, err
		}
		before = &k
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Notification, 0)
	for _, n := range s.notifications[userID] {
		if q.UnreadOnly && n.IsRead {
			continue
		}
		if q.Type != "" && n.Type != q.Type {
			continue
		}
		matched = append(matched, *n)
	}

	// [start, end) — окно страницы в matched
	start, end := 0, len(matched)
	switch {
	case after != nil:
		start = sort.Search(len(matched), func(i int) bool {
			return after.before(keyOf(&matched[i]))
		})
		end = min(start+q.Limit, len(matched))
	case before != nil:
		end = sort.Search(len(matched), func(i int) bool {
			return !keyOf(&matched[i]).before(*before)
		})
		start = max(end-q.Limit, 0)
	default:
		end = min(q.Limit, len(matched))
	}

	items := append([]model.Notification{}, matched[start:end]...)
	res := pagination.CursorPage[model.Notification]{Items: items}
	if len(items) == 0 {
		return res, nil
	}

	// HasMore и NextCursor ведут дальше в направлении запроса:
	// для before это более новые элементы, передаваемые снова как before.
	// PrevCursor ведет в обратную сторону.
	first, last := keyOf(&items[0]).cursor(), keyOf(&items[len(items)-1]).cursor()
	if before != nil {
		if start > 0 {
			res.Metadata.HasMore = true
			res.Metadata.NextCursor = first
		}
		if end < len(matched) {
			res.Metadata.PrevCursor = last
		}
		return res, nil
	}

	if end < len(matched) {
		res.Metadata.HasMore = true
		res.Metadata.NextCursor = last
	}
	if start > 0 {
		res.Metadata.PrevCursor = first
	}
	return res, nil
}

func (s *Store) findNotification(userID, id string) (*model.Notification, int, error) {
	for i, n := range s.notifications[userID] {
		if n.ID == id {
			return n, i, nil
		}
	}
	return nil, -1, fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

func (s *Store) MarkRead(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _, err := s.findNotification(userID, id)
	if err != nil {
		return err
	}
	if !n.IsRead {
		at := s.now().UTC()
		n.IsRead = true
		n.ReadAt = &at
	}
	return nil
}

// MarkAllRead помечает всю ленту и возвращает число измененных
func (s *Store) MarkAllRead(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.now().UTC()
	count := 0
	for _, n := range s.notifications[userID] {
		if !n.IsRead {
			n.IsRead = true
			n.ReadAt = &at
			count++
		}
	}
	return count
}

func (s *Store) DeleteNotification(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, i, err := s.findNotification(userID, id)
	if err != nil {
		return err
	}
	feed := s.notifications[userID]
	s.notifications[userID] = append(feed[:i], feed[i+1:]...)
	return nil
}

func (s *Store) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// NewCount — число уведомлений после последней отметки просмотра
func (s *Store) NewCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	checked := s.checkedAt[userID]
	count := 0
	for _, n := range s.notifications[userID] {
		if n.CreatedAt.After(checked) {
			count++
		}
	}
	return count
}

func (s *Store) MarkChecked(userID string) {
	s.mu.Lock()
	s.checkedAt[userID] = s.now().UTC()
	s.mu.Unlock()
}

// RegisterDevice запоминает push-токен устройства; повторная регистрация
// того же токена только обновляет платформу
func (s *Store) RegisterDevice(userID, token, platform string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.devices[userID] == nil {
		s.devices[userID] = make(map[string]string)
	}
	s.devices[userID][token] = platform
}

func (s *Store) Devices(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices[userID])
}
