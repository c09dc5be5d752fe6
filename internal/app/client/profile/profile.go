// Package profile хранит профиль текущего пользователя и перечитывает его
// при смене сессии.
package profile

import (
	"context"
	"sync"

	"pressroom/internal/app/client/api"
	"pressroom/internal/model"
)

type Service interface {
	GetMe(ctx context.Context) (*model.User, error)
	UpdateMe(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error)
}

var _ Service = (*api.UserAPI)(nil)

type Profile struct {
	provider func() Service

	mu   sync.RWMutex
	user *model.User
}

func New(provider func() Service) *Profile {
	return &Profile{provider: provider}
}

// Reload загружает профиль; для анонимной сессии профиль очищается без запроса
func (p *Profile) Reload(ctx context.Context, authenticated bool) error {
	if !authenticated {
		p.Clear()
		return nil
	}
	u, err := p.provider().GetMe(ctx)
	if err != nil {
		return err
	}
	p.set(u)
	return nil
}

func (p *Profile) Update(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	u, err := p.provider().UpdateMe(ctx, req)
	if err != nil {
		return nil, err
	}
	p.set(u)
	return p.Current(), nil
}

func (p *Profile) set(u *model.User) {
	cp := *u
	p.mu.Lock()
	p.user = &cp
	p.mu.Unlock()
}

func (p *Profile) Clear() {
	p.mu.Lock()
	p.user = nil
	p.mu.Unlock()
}

// Current возвращает копию профиля или nil
func (p *Profile) Current() *model.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	cp := *p.user
	return &cp
}

// HasRole — у текущего пользователя одна из ролей
func (p *Profile) HasRole(roles ...model.Role) bool {
	u := p.Current()
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
