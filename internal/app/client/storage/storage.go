// Package storage — локальное хранилище клиента (SQLite): сохраненная сессия
// и пользовательские настройки.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"pressroom/internal/app/client/session"
	"pressroom/internal/infrastructure/migration"
	"pressroom/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

// Open открывает базу по пути и применяет миграции
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("ошибка создания каталога данных: %w", err)
		}
	}

	if err := migration.NewMigration(migrations, "migrations", migration.SQLiteURL(path), nil).Up(); err != nil {
		return nil, fmt.Errorf("ошибка применения миграций: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}
	return New(db), nil
}

// New оборачивает уже открытое соединение
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession сохраняет токены; пустая сессия удаляет запись
func (s *Store) SaveSession(ctx context.Context, sess session.Session) error {
	if !sess.Authenticated() {
		return s.ClearSession(ctx)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, refresh_token, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			refresh_token = excluded.refresh_token,
			updated_at = excluded.updated_at
	`, sess.Token(), sess.RefreshToken(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

// LoadSession возвращает сохраненную сессию или анонимную, если ее нет
func (s *Store) LoadSession(ctx context.Context) (session.Session, error) {
	var token, refresh string
	err := s.db.QueryRowContext(ctx, `SELECT token, refresh_token FROM sessions WHERE id = 1`).
		Scan(&token, &refresh)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Anonymous(), nil
	}
	if err != nil {
		return session.Anonymous(), fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return session.New(token).WithRefreshToken(refresh), nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

// SavePreferences сохраняет настройки; synced — настройки уже на сервере
func (s *Store) SavePreferences(ctx context.Context, p model.Preferences, synced bool) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("ошибка сериализации настроек: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (id, data, synced, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			synced = excluded.synced,
			updated_at = excluded.updated_at
	`, string(data), synced, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка сохранения настроек: %w", err)
	}
	return nil
}

// LoadPreferences возвращает настройки; без записи — настройки по умолчанию
func (s *Store) LoadPreferences(ctx context.Context) (model.Preferences, bool, error) {
	var (
		data   string
		synced bool
	)
	err := s.db.QueryRowContext(ctx, `SELECT data, synced FROM preferences WHERE id = 1`).
		Scan(&data, &synced)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultPreferences(), true, nil
	}
	if err != nil {
		return model.DefaultPreferences(), false, fmt.Errorf("ошибка чтения настроек: %w", err)
	}

	p := model.DefaultPreferences()
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return model.DefaultPreferences(), false, fmt.Errorf("ошибка парсинга настроек: %w", err)
	}
	return p, synced, nil
}
