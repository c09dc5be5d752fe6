// Package session хранит снимок состояния аутентификации, которое читает API-слой.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session — неизменяемый снимок bearer-токена.
// Generation выставляет транспорт в момент применения сессии; ресурсы,
// собранные на старом поколении, считаются устаревшими.
type Session struct {
	token        string
	refreshToken string
	subject      string
	expiresAt    time.Time
	generation   uint64
}

// Anonymous — сессия без токена
func Anonymous() Session {
	return Session{}
}

// New создает сессию из токена. Если токен — JWT, из него без проверки
// подписи читаются exp и sub (подпись проверяет сервер).
func New(token string) Session {
	token = strings.TrimSpace(token)
	s := Session{token: token}
	if token == "" {
		return s
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil {
		if claims.ExpiresAt != nil {
			s.expiresAt = claims.ExpiresAt.Time
		}
		s.subject = claims.Subject
	}

	return s
}

// WithRefreshToken возвращает копию сессии с refresh-токеном
func (s Session) WithRefreshToken(refresh string) Session {
	s.refreshToken = refresh
	return s
}

// WithGeneration возвращает копию сессии с заданным поколением
func (s Session) WithGeneration(gen uint64) Session {
	s.generation = gen
	return s
}

func (s Session) Token() string        { return s.token }
func (s Session) RefreshToken() string { return s.refreshToken }
func (s Session) Subject() string      { return s.subject }
func (s Session) ExpiresAt() time.Time { return s.expiresAt }
func (s Session) Generation() uint64   { return s.generation }

// Authenticated — есть ли токен
func (s Session) Authenticated() bool {
	return s.token != ""
}

// ExpiresWithin сообщает, истекает ли токен в ближайшие d.
// Токены без exp считаются бессрочными.
func (s Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if !s.Authenticated() || s.expiresAt.IsZero() {
		return false
	}
	return !now.Add(d).Before(s.expiresAt)
}

// SameToken сравнивает токены двух сессий
func (s Session) SameToken(other Session) bool {
	return s.token == other.token
}

// AuthorizationHeader возвращает значение заголовка Authorization или пустую строку
func (s Session) AuthorizationHeader() string {
	if !s.Authenticated() {
		return ""
	}
	return "Bearer " + s.token
}
