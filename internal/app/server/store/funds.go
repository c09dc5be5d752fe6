package store

import (
	"fmt"

	"pressroom/internal/model"
)

func contentKey(contentType, contentID string) string {
	return contentType + "/" + contentID
}

// AddFund привязывает сбор к контенту; у контента не больше одного сбора
func (s *Store) AddFund(f model.Fund) (model.Fund, error) {
	if f.ID == "" {
		f.ID = newID()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := contentKey(f.ContentType, f.ContentID)
	if _, ok := s.funds[key]; ok {
		return model.Fund{}, fmt.Errorf("fund for %s: %w", key, ErrConflict)
	}
	s.funds[key] = &f
	return f, nil
}

// FundForContent возвращает сбор контента или ErrNotFound
func (s *Store) FundForContent(contentType, contentID string) (model.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.funds[contentKey(contentType, contentID)]
	if !ok {
		return model.Fund{}, fmt.Errorf("fund for %s: %w", contentKey(contentType, contentID), ErrNotFound)
	}
	return *f, nil
}
