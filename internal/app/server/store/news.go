package store

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"pressroom/internal/model"
)

// NewsQuery — фильтр и страница ленты новостей
type NewsQuery struct {
	Search    string
	Category  string
	Tags      []string
	ChannelID string
	AuthorID  string
	Status    model.NewsStatus
	Sort      string
	Featured  bool
	Page      int
	Limit     int
}

// News возвращает страницу новостей и общее число подходящих.
// Без фильтра статуса отдаются только опубликованные.
func (s *Store) News(q NewsQuery) ([]model.News, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := q.Status
	if status == "" {
		status = model.NewsStatusPublished
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]model.News, 0, len(s.news))
	for _, n := range s.news {
		if n.Status != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(n.Title), search) {
			continue
		}
		if q.Category != "" && n.Category != q.Category {
			continue
		}
		if q.ChannelID != "" && n.ChannelID != q.ChannelID {
			continue
		}
		if q.AuthorID != "" && n.AuthorID != q.AuthorID {
			continue
		}
		if q.Featured && !n.Featured {
			continue
		}
		if !hasTags(n.Tags, q.Tags) {
			continue
		}
		matched = append(matched, *n)
	}

	switch q.Sort {
	case "popular":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Views > matched[j].Views })
	case "trending":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Likes > matched[j].Likes })
	case "oldest":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	default:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	return page(matched, q.Page, q.Limit), len(matched)
}

// hasTags — у новости есть все запрошенные теги
func hasTags(have, want []string) bool {
	for _, t := range want {
		if !slices.Contains(have, t) {
			return false
		}
	}
	return true
}

func (s *Store) NewsItem(id string) (model.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.news {
		if n.ID == id || n.Slug == id {
			return *n, nil
		}
	}
	return model.News{}, fmt.Errorf("news %s: %w", id, ErrNotFound)
}
