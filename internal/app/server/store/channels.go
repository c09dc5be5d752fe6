package store

import (
	"fmt"
	"sort"
	"strings"

	"pressroom/internal/model"
)

// ChannelQuery — фильтр и страница списка каналов
type ChannelQuery struct {
	Search     string
	Category   string
	Sort       string
	Verified   bool
	Subscribed bool
	Mine       bool
	Page       int
	Limit      int
}

// Channels возвращает страницу каналов и общее число подходящих.
// userID может быть пустым: тогда фильтры subscribed и mine ничего не находят.
func (s *Store) Channels(userID string, q ChannelQuery) ([]model.Channel, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := s.subscriptions[userID]
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]model.Channel, 0, len(s.channels))
	for _, c := range s.channels {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		if q.Category != "" && c.Category != q.Category {
			continue
		}
		if q.Verified && !c.Verified {
			continue
		}
		if q.Subscribed && !subs[c.ID] {
			continue
		}
		if q.Mine && (userID == "" || c.OwnerID != userID) {
			continue
		}
		ch := *c
		ch.Subscribed = subs[c.ID]
		matched = append(matched, ch)
	}

	switch q.Sort {
	case "popular":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Subscribers > matched[j].Subscribers })
	case "name":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	default:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	return page(matched, q.Page, q.Limit), len(matched)
}

func (s *Store) channel(id string) (*model.Channel, error) {
	for _, c := range s.channels {
		if c.ID == id || c.Slug == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("channel %s: %w", id, ErrNotFound)
}

func (s *Store) Channel(userID, id string) (model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.channel(id)
	if err != nil {
		return model.Channel{}, err
	}
	ch := *c
	ch.Subscribed = s.subscriptions[userID][c.ID]
	return ch, nil
}

// SetSubscribed подписывает или отписывает пользователя.
// Возвращает итоговое состояние и число подписчиков.
func (s *Store) SetSubscribed(userID, channelID string, subscribed bool) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.channel(channelID)
	if err != nil {
		return false, 0, err
	}
	subs := s.subscriptions[userID]
	if subs == nil {
		subs = make(map[string]bool)
		s.subscriptions[userID] = subs
	}

	switch {
	case subscribed && !subs[c.ID]:
		subs[c.ID] = true
		c.Subscribers++
	case !subscribed && subs[c.ID]:
		delete(subs, c.ID)
		c.Subscribers--
	}
	return subs[c.ID], c.Subscribers, nil
}
