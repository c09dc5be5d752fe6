package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/token"
)

// Validator проверяет access-токен
type Validator interface {
	Validate(raw string) (token.Identity, error)
}

type Auth struct {
	tokens Validator
	log    *slog.Logger
}

func New(tokens Validator, log *slog.Logger) *Auth {
	return &Auth{
		tokens: tokens,
		log:    log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const identityKey contextKey = "identity"

// Middleware пропускает только запросы с валидным bearer-токеном
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return a.handler(true)
}

// Optional пропускает анонимные запросы, но отклоняет невалидный токен
func (a *Auth) Optional() func(huma.Context, func(huma.Context)) {
	return a.handler(false)
}

func (a *Auth) handler(required bool) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		if header == "" && !required {
			next(ctx)
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			a.log.Debug("missing bearer token", slog.String("path", ctx.URL().Path))
			a.unauthorized(ctx)
			return
		}

		id, err := a.tokens.Validate(raw)
		if err != nil {
			a.log.Debug("token rejected",
				slog.String("path", ctx.URL().Path),
				slog.String("error", err.Error()),
			)
			a.unauthorized(ctx)
			return
		}

		next(huma.WithContext(ctx, context.WithValue(ctx.Context(), identityKey, id)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusUnauthorized)

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("encode unauthorized response", slog.String("error", err.Error()))
	}
}

// Identity возвращает владельца токена запроса
func Identity(ctx context.Context) (token.Identity, bool) {
	id, ok := ctx.Value(identityKey).(token.Identity)
	return id, ok
}

// UserID возвращает id пользователя или пустую строку для анонимного запроса
func UserID(ctx context.Context) string {
	id, _ := Identity(ctx)
	return id.UserID
}

// Require возвращает id пользователя или 401
func Require(ctx context.Context) (string, error) {
	id, ok := Identity(ctx)
	if !ok || id.UserID == "" {
		return "", huma.Error401Unauthorized("Unauthorized")
	}
	return id.UserID, nil
}
