// Package store — данные песочницы в памяти: пользователи, каналы, новости,
// уведомления и сборы. Все методы безопасны для конкурентного вызова.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCursor      = errors.New("invalid cursor")
)

type userRecord struct {
	user         model.User
	passwordHash []byte
}

type Store struct {
	now func() time.Time

	mu            sync.RWMutex
	users         map[string]*userRecord
	byEmail       map[string]string
	prefs         map[string]model.Preferences
	channels      []*model.Channel
	subscriptions map[string]map[string]bool
	news          []*model.News
	notifications map[string][]*model.Notification
	checkedAt     map[string]time.Time
	devices       map[string]map[string]string
	funds         map[string]*model.Fund
}

func New() *Store {
	return &Store{
		now:           time.Now,
		users:         make(map[string]*userRecord),
		byEmail:       make(map[string]string),
		prefs:         make(map[string]model.Preferences),
		subscriptions: make(map[string]map[string]bool),
		notifications: make(map[string][]*model.Notification),
		checkedAt:     make(map[string]time.Time),
		devices:       make(map[string]map[string]string),
		funds:         make(map[string]*model.Fund),
	}
}

// WithClock подменяет часы (для тестов)
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func newID() string {
	return uuid.NewString()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser регистрирует пользователя с bcrypt-хэшем пароля
func (s *Store) CreateUser(email, username, password string, role model.Role) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("хэш пароля: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.byEmail[key]; ok {
		return model.User{}, fmt.Errorf("user %s: %w", key, ErrConflict)
	}
	for _, rec := range s.users {
		if strings.EqualFold(rec.user.Username, username) {
			return model.User{}, fmt.Errorf("username %s: %w", username, ErrConflict)
		}
	}

	if role == "" {
		role = model.RoleReader
	}
	u := model.User{
		ID:        newID(),
		Email:     key,
		Username:  username,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	s.users[u.ID] = &userRecord{user: u, passwordHash: hash}
	s.byEmail[key] = u.ID
	return u, nil
}

// Authenticate проверяет пароль пользователя
func (s *Store) Authenticate(email, password string) (model.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[normalizeEmail(email)]
	var rec userRecord
	if ok {
		rec = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok {
		return model.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return rec.user, nil
}

func (s *Store) User(id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return rec.user, nil
}

func (s *Store) UpdateUser(id string, req model.UpdateProfileRequest) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if req.DisplayName != nil {
		rec.user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		rec.user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		rec.user.AvatarURL = *req.AvatarURL
	}
	return rec.user, nil
}

// Preferences возвращает настройки пользователя или настройки по умолчанию
func (s *Store) Preferences(userID string) model.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.prefs[userID]; ok {
		return p
	}
	return model.DefaultPreferences()
}

func (s *Store) SetPreferences(userID string, p model.Preferences) model.Preferences {
	s.mu.Lock()
	s.prefs[userID] = p
	s.mu.Unlock()
	return p
}

// page вырезает окно offset-страницы из отсортированного среза
func page[T any](all []T, pageNum, limit int) []T {
	start, end := pagination.Window(len(all), pageNum, limit)
	out := make([]T, 0, end-start)
	return append(out, all[start:end]...)
}

type Stats struct {
	Users    int `json:"users"`
	Channels int `json:"channels"`
	News     int `json:"news"`
	Funds    int `json:"funds"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Users:    len(s.users),
		Channels: len(s.channels),
		News:     len(s.news),
		Funds:    len(s.funds),
	}
}
