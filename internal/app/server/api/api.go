// Package api собирает HTTP-песочницу платформы:
//
//	GET    /api/health
//	POST   /api/auth/{login,register,refresh}        (публичные)
//	POST   /api/auth/logout                          (auth)
//	GET    /api/users/me, PATCH /api/users/me        (auth)
//	GET    /api/channels, /api/channels/{id}         (токен необязателен)
//	POST   /api/channels/{id}/subscribe              (auth)
//	GET    /api/news, /api/news/{id}, /slug/{slug}   (публичные)
//	GET    /api/notifications ...                    (auth, курсор)
//	GET    /api/funding/content/{type}/{id}          (публичный)
//	PUT    /api/sandbox/faults                       (управление сбоями)
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	channelAPI "pressroom/internal/app/server/api/http/channel"
	fundingAPI "pressroom/internal/app/server/api/http/funding"
	healthAPI "pressroom/internal/app/server/api/http/health"
	"pressroom/internal/app/server/api/http/middleware"
	"pressroom/internal/app/server/api/http/middleware/auth"
	"pressroom/internal/app/server/api/http/middleware/fault"
	"pressroom/internal/app/server/api/http/middleware/logger"
	newsAPI "pressroom/internal/app/server/api/http/news"
	notificationAPI "pressroom/internal/app/server/api/http/notification"
	"pressroom/internal/app/server/api/http/respond"
	sandboxAPI "pressroom/internal/app/server/api/http/sandbox"
	userAPI "pressroom/internal/app/server/api/http/user"
	"pressroom/internal/app/server/store"
	"pressroom/internal/app/server/token"
)

type Handlers struct {
	Health       *healthAPI.Handler
	User         *userAPI.Handler
	Channel      *channelAPI.Handler
	News         *newsAPI.Handler
	Notification *notificationAPI.Handler
	Funding      *fundingAPI.Handler
	Sandbox      *sandboxAPI.Handler
}

// Deps — зависимости песочницы. Publisher может быть nil.
type Deps struct {
	Store     *store.Store
	Tokens    *token.Service
	Faults    *fault.Injector
	Publisher notificationAPI.Publisher
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(deps Deps, log *slog.Logger) *chi.Mux {
	respond.Install()

	mux := chi.NewMux()

	config := huma.DefaultConfig("Pressroom Sandbox API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Channel.SetupRoutes(API)
	h.News.SetupRoutes(API)
	h.Notification.SetupRoutes(API)
	h.Funding.SetupRoutes(API)
	h.Sandbox.SetupRoutes(API)

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	authMW := auth.New(deps.Tokens, log)
	loggerMW := logger.New(log)
	base := middleware.NewChain(loggerMW.Middleware())

	healthHandler := healthAPI.NewHandler(deps.Store, deps.Faults, log, base.With())

	// open не смотрит на токен: просроченный заголовок не мешает логину
	faulty := base.Extend(deps.Faults.Middleware())
	open := faulty.With()
	optional := faulty.With(authMW.Optional())
	private := faulty.With(authMW.Middleware())

	userHandler := userAPI.NewHandler(deps.Store, deps.Tokens, log, open, private)
	channelHandler := channelAPI.NewHandler(deps.Store, log, optional, private)
	newsHandler := newsAPI.NewHandler(deps.Store, log, open)
	notificationHandler := notificationAPI.NewHandler(deps.Store, deps.Publisher, log, private)
	fundingHandler := fundingAPI.NewHandler(deps.Store, log, open)

	// правила сбоев не должны ломать ручки, которыми их снимают
	sandboxHandler := sandboxAPI.NewHandler(deps.Faults, log, base.With())

	return &Handlers{
		Health:       healthHandler,
		User:         userHandler,
		Channel:      channelHandler,
		News:         newsHandler,
		Notification: notificationHandler,
		Funding:      fundingHandler,
		Sandbox:      sandboxHandler,
	}
}
