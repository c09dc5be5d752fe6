// Package token выпускает и проверяет JWT песочницы: короткий access-токен
// и долгий refresh-токен, отзываемый при выходе.
package token

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "pressroom-sandbox"

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrRevoked      = errors.New("token revoked")
)

type claims struct {
	Kind string `json:"kind"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Pair — выданная пара токенов
type Pair struct {
	Access    string
	Refresh   string
	ExpiresIn time.Duration
}

// Identity — владелец валидного access-токена
type Identity struct {
	UserID string
	Role   string
}

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		revoked:    make(map[string]time.Time),
	}
}

// WithClock подменяет часы (для тестов)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue выпускает новую пару токенов
func (s *Service) Issue(userID, role string) (Pair, error) {
	now := s.now()

	access, err := s.sign(claims{
		Kind: kindAccess,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})
	if err != nil {
		return Pair{}, err
	}

	refresh, err := s.sign(claims{
		Kind: kindRefresh,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	})
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh, ExpiresIn: s.accessTTL}, nil
}

func (s *Service) sign(c claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parse(raw, kind string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(raw, c,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, kind)
	}
	return c, nil
}

// Validate проверяет access-токен
func (s *Service) Validate(raw string) (Identity, error) {
	c, err := s.parse(raw, kindAccess)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: c.Subject, Role: c.Role}, nil
}

// Refresh обменивает refresh-токен на новую пару; старый refresh отзывается
func (s *Service) Refresh(raw string) (Pair, error) {
	c, err := s.parse(raw, kindRefresh)
	if err != nil {
		return Pair{}, err
	}

	s.mu.Lock()
	if _, ok := s.revoked[c.ID]; ok {
		s.mu.Unlock()
		return Pair{}, ErrRevoked
	}
	s.revoked[c.ID] = c.ExpiresAt.Time
	s.mu.Unlock()

	return s.Issue(c.Subject, c.Role)
}

// Revoke отзывает refresh-токен; невалидный токен игнорируется
func (s *Service) Revoke(raw string) {
	c, err := s.parse(raw, kindRefresh)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.revoked[c.ID] = c.ExpiresAt.Time
	s.prune()
	s.mu.Unlock()
}

// prune убирает отзывы уже истекших токенов
func (s *Service) prune() {
	now := s.now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
}
