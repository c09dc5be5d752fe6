// Package preferences — пользовательские настройки и тема оформления.
// Источник истины — локальное хранилище; синхронизация с сервером best-effort.
package preferences

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/exp/slog"

	"pressroom/internal/app/client/api"
	"pressroom/internal/model"
)

// Store — локальное хранилище настроек
type Store interface {
	SavePreferences(ctx context.Context, p model.Preferences, synced bool) error
	LoadPreferences(ctx context.Context) (model.Preferences, bool, error)
}

// Service — серверная часть настроек
type Service interface {
	GetPreferences(ctx context.Context) (*model.Preferences, error)
	UpdatePreferences(ctx context.Context, p model.Preferences) (*model.Preferences, error)
}

var _ Service = (*api.UserAPI)(nil)

type Manager struct {
	store    Store
	provider func() Service
	log      *slog.Logger
	system   func() model.ThemeMode

	mu     sync.RWMutex
	prefs  model.Preferences
	synced bool
}

func NewManager(store Store, provider func() Service, log *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		provider: provider,
		log:      log.With(slog.String("component", "preferences")),
		system:   SystemTheme,
		prefs:    model.DefaultPreferences(),
		synced:   true,
	}
}

// Load читает настройки из локального хранилища
func (m *Manager) Load(ctx context.Context) error {
	p, synced, err := m.store.LoadPreferences(ctx)
	m.mu.Lock()
	m.prefs, m.synced = p, synced
	m.mu.Unlock()
	return err
}

func (m *Manager) Get() model.Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs
}

// Synced — локальные изменения уже отправлены на сервер
func (m *Manager) Synced() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.synced
}

// Update меняет настройки локально и пытается отправить их на сервер.
// Ошибка сервера не откатывает локальные изменения: они уйдут при следующем Sync.
func (m *Manager) Update(ctx context.Context, authenticated bool, fn func(p *model.Preferences)) (model.Preferences, error) {
	m.mu.RLock()
	next := m.prefs
	m.mu.RUnlock()

	fn(&next)
	if err := api.Validate(next); err != nil {
		return m.Get(), err
	}
	if err := m.store.SavePreferences(ctx, next, false); err != nil {
		return m.Get(), err
	}

	m.mu.Lock()
	m.prefs, m.synced = next, false
	m.mu.Unlock()

	if !authenticated {
		return next, nil
	}
	if err := m.push(ctx, next); err != nil {
		m.log.Warn("preferences not synced", slog.String("error", err.Error()))
	}
	return next, nil
}

// SetTheme — частный случай Update
func (m *Manager) SetTheme(ctx context.Context, authenticated bool, mode model.ThemeMode) (model.Preferences, error) {
	return m.Update(ctx, authenticated, func(p *model.Preferences) { p.Theme = mode })
}

// Sync после входа: неотправленные локальные изменения уходят на сервер,
// иначе берутся серверные настройки
func (m *Manager) Sync(ctx context.Context) error {
	m.mu.RLock()
	local, synced := m.prefs, m.synced
	m.mu.RUnlock()

	if !synced {
		return m.push(ctx, local)
	}

	remote, err := m.provider().GetPreferences(ctx)
	if err != nil {
		return err
	}
	if err := api.Validate(*remote); err != nil {
		return errors.Join(errors.New("server returned invalid preferences"), err)
	}
	if err := m.store.SavePreferences(ctx, *remote, true); err != nil {
		return err
	}
	m.mu.Lock()
	m.prefs, m.synced = *remote, true
	m.mu.Unlock()
	return nil
}

func (m *Manager) push(ctx context.Context, p model.Preferences) error {
	saved, err := m.provider().UpdatePreferences(ctx, p)
	if err != nil {
		return err
	}
	if err := m.store.SavePreferences(ctx, *saved, true); err != nil {
		return err
	}
	m.mu.Lock()
	m.prefs, m.synced = *saved, true
	m.mu.Unlock()
	return nil
}

// Theme — итоговая тема: system разрешается по окружению терминала
func (m *Manager) Theme() model.ThemeMode {
	return Resolve(m.Get().Theme, m.system)
}

// Resolve возвращает light или dark
func Resolve(mode model.ThemeMode, system func() model.ThemeMode) model.ThemeMode {
	switch mode {
	case model.ThemeLight, model.ThemeDark:
		return mode
	}
	if system != nil {
		if s := system(); s == model.ThemeLight || s == model.ThemeDark {
			return s
		}
	}
	return model.ThemeLight
}

// SystemTheme определяет тему терминала по PRESSROOM_THEME или COLORFGBG
func SystemTheme() model.ThemeMode {
	if v := model.ThemeMode(strings.ToLower(os.Getenv("PRESSROOM_THEME"))); v == model.ThemeLight || v == model.ThemeDark {
		return v
	}
	return themeFromColorFGBG(os.Getenv("COLORFGBG"))
}

// themeFromColorFGBG разбирает "fg;bg": фон 0-6 и 8 считается темным
func themeFromColorFGBG(v string) model.ThemeMode {
	parts := strings.Split(v, ";")
	if len(parts) < 2 {
		return model.ThemeSystem
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return model.ThemeSystem
	}
	if bg == 8 || (bg >= 0 && bg <= 6) {
		return model.ThemeDark
	}
	return model.ThemeLight
}
