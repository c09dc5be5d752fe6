package storage

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/app/client/session"
	"pressroom/internal/model"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestSaveSession(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WithArgs("tok", "ref", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.SaveSession(context.Background(), session.New("tok").WithRefreshToken("ref"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSession_AnonymousClears(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE id = 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.SaveSession(context.Background(), session.Anonymous()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSession(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT token, refresh_token FROM sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"token", "refresh_token"}).AddRow("tok", "ref"))

	got, err := s.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token())
	assert.Equal(t, "ref", got.RefreshToken())
}

func TestLoadSession_NoRows(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT token, refresh_token FROM sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"token", "refresh_token"}))

	got, err := s.LoadSession(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Authenticated())
}

func TestLoadSession_Error(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT token, refresh_token FROM sessions")).
		WillReturnError(errors.New("disk I/O error"))

	got, err := s.LoadSession(context.Background())
	assert.Error(t, err)
	assert.False(t, got.Authenticated())
}

func TestPreferences_RoundTripThroughMock(t *testing.T) {
	s, mock := newMock(t)
	prefs := model.Preferences{Theme: model.ThemeDark, Language: "ru", PageSize: 50}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO preferences")).
		WithArgs(`{"theme":"dark","language":"ru","pageSize":50,"emailDigest":false,"notificationSound":false}`, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.SavePreferences(context.Background(), prefs, false))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data, synced FROM preferences")).
		WillReturnRows(sqlmock.NewRows([]string{"data", "synced"}).AddRow(`{"theme":"dark","language":"ru","pageSize":50}`, false))
	got, synced, err := s.LoadPreferences(context.Background())
	require.NoError(t, err)
	assert.False(t, synced)
	assert.Equal(t, model.ThemeDark, got.Theme)
	assert.Equal(t, 50, got.PageSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPreferences_Defaults(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT data, synced FROM preferences")).
		WillReturnRows(sqlmock.NewRows([]string{"data", "synced"}))

	got, synced, err := s.LoadPreferences(context.Background())
	require.NoError(t, err)
	assert.True(t, synced)
	assert.Equal(t, model.DefaultPreferences(), got)
}

func TestLoadPreferences_Corrupted(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT data, synced FROM preferences")).
		WillReturnRows(sqlmock.NewRows([]string{"data", "synced"}).AddRow(`{broken`, true))

	got, _, err := s.LoadPreferences(context.Background())
	assert.Error(t, err)
	assert.Equal(t, model.DefaultPreferences(), got)
}

func TestOpen_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "pressroom.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveSession(ctx, session.New("tok")))
	got, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token())

	// повторное открытие не ломается на уже примененных миграциях
	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}
