package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pressroom/internal/app/client/api"
	"pressroom/internal/model"
	"pressroom/internal/utils/logger"
)

type memStore struct {
	prefs  model.Preferences
	synced bool
	saves  int
	err    error
}

func (s *memStore) SavePreferences(_ context.Context, p model.Preferences, synced bool) error {
	if s.err != nil {
		return s.err
	}
	s.prefs, s.synced = p, synced
	s.saves++
	return nil
}

func (s *memStore) LoadPreferences(context.Context) (model.Preferences, bool, error) {
	return s.prefs, s.synced, s.err
}

type mockService struct {
	mock.Mock
}

func (m *mockService) GetPreferences(ctx context.Context) (*model.Preferences, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*model.Preferences)
	return p, args.Error(1)
}

func (m *mockService) UpdatePreferences(ctx context.Context, p model.Preferences) (*model.Preferences, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(*model.Preferences)
	return out, args.Error(1)
}

func newManager(store *memStore, svc *mockService) *Manager {
	return NewManager(store, func() Service { return svc }, logger.Discard())
}

func TestUpdate_PushesWhenAuthenticated(t *testing.T) {
	store := &memStore{prefs: model.DefaultPreferences(), synced: true}
	svc := new(mockService)
	m := newManager(store, svc)
	require.NoError(t, m.Load(context.Background()))

	want := model.DefaultPreferences()
	want.Theme = model.ThemeDark
	svc.On("UpdatePreferences", mock.Anything, want).Return(&want, nil).Once()

	got, err := m.SetTheme(context.Background(), true, model.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, got.Theme)
	assert.True(t, m.Synced())
	assert.True(t, store.synced)
	svc.AssertExpectations(t)
}

func TestUpdate_KeepsLocalChangeWhenServerFails(t *testing.T) {
	store := &memStore{prefs: model.DefaultPreferences(), synced: true}
	svc := new(mockService)
	m := newManager(store, svc)
	svc.On("UpdatePreferences", mock.Anything, mock.Anything).Return(nil, errors.New("offline")).Once()

	got, err := m.Update(context.Background(), true, func(p *model.Preferences) { p.PageSize = 50 })
	require.NoError(t, err)
	assert.Equal(t, 50, got.PageSize)
	assert.Equal(t, 50, store.prefs.PageSize)
	assert.False(t, m.Synced())
}

func TestUpdate_RejectsInvalid(t *testing.T) {
	store := &memStore{prefs: model.DefaultPreferences()}
	m := newManager(store, new(mockService))

	_, err := m.Update(context.Background(), false, func(p *model.Preferences) { p.PageSize = 0 })
	assert.ErrorIs(t, err, api.ErrInvalidRequest)
	assert.Zero(t, store.saves)
	assert.Equal(t, model.DefaultPreferences(), m.Get())
}

func TestSync_PullsWhenSynced(t *testing.T) {
	store := &memStore{prefs: model.DefaultPreferences(), synced: true}
	svc := new(mockService)
	m := newManager(store, svc)
	require.NoError(t, m.Load(context.Background()))

	remote := model.Preferences{Theme: model.ThemeLight, Language: "de", PageSize: 30}
	svc.On("GetPreferences", mock.Anything).Return(&remote, nil).Once()

	require.NoError(t, m.Sync(context.Background()))
	assert.Equal(t, remote, m.Get())
	assert.Equal(t, remote, store.prefs)
}

func TestSync_PushesPendingLocalChanges(t *testing.T) {
	local := model.Preferences{Theme: model.ThemeDark, Language: "en", PageSize: 10}
	store := &memStore{prefs: local, synced: false}
	svc := new(mockService)
	m := newManager(store, svc)
	require.NoError(t, m.Load(context.Background()))

	svc.On("UpdatePreferences", mock.Anything, local).Return(&local, nil).Once()

	require.NoError(t, m.Sync(context.Background()))
	assert.True(t, m.Synced())
	svc.AssertNotCalled(t, "GetPreferences", mock.Anything)
}

func TestResolve(t *testing.T) {
	dark := func() model.ThemeMode { return model.ThemeDark }
	unknown := func() model.ThemeMode { return model.ThemeSystem }

	assert.Equal(t, model.ThemeLight, Resolve(model.ThemeLight, dark))
	assert.Equal(t, model.ThemeDark, Resolve(model.ThemeSystem, dark))
	assert.Equal(t, model.ThemeLight, Resolve(model.ThemeSystem, unknown))
	assert.Equal(t, model.ThemeLight, Resolve(model.ThemeSystem, nil))
}

func TestThemeFromColorFGBG(t *testing.T) {
	tests := map[string]model.ThemeMode{
		"15;0":     model.ThemeDark,
		"0;15":     model.ThemeLight,
		"12;8":     model.ThemeDark,
		"15;def;0": model.ThemeDark,
		"":         model.ThemeSystem,
		"x;y":      model.ThemeSystem,
	}
	for in, want := range tests {
		assert.Equal(t, want, themeFromColorFGBG(in), in)
	}
}

func TestSystemTheme_EnvOverride(t *testing.T) {
	t.Setenv("PRESSROOM_THEME", "dark")
	assert.Equal(t, model.ThemeDark, SystemTheme())
}
