// Package server собирает песочницу: хранилище с демо-данными, токены,
// правила сбоев, необязательную публикацию push-событий и HTTP-сервер.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api"
	"pressroom/internal/app/server/api/http/middleware/fault"
	"pressroom/internal/app/server/config"
	"pressroom/internal/app/server/store"
	"pressroom/internal/app/server/token"
	"pressroom/internal/infrastructure/push"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	log    *slog.Logger

	store  *store.Store
	tokens *token.Service
	faults *fault.Injector
	rdb    *redis.Client

	handler http.Handler
	srv     *http.Server
}

// New наполняет хранилище и собирает роутер. Redis подключается только
// если задан REDIS_ADDR; ошибка подключения не фатальна.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{
		config: cfg,
		log:    log.With(slog.String("component", "sandbox")),
		store:  store.New(),
		tokens: token.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL),
		faults: fault.New(log),
	}

	demo, err := a.store.Seed(store.SeedOptions{
		Channels:      cfg.Seed.Channels,
		News:          cfg.Seed.News,
		Notifications: cfg.Seed.Notifications,
	})
	if err != nil {
		return nil, fmt.Errorf("seed sandbox: %w", err)
	}
	a.log.Info("demo account ready",
		slog.String("email", demo.Email),
		slog.String("password", store.DemoPassword),
	)

	if cfg.Faults != "" {
		rules, err := fault.Parse(cfg.Faults)
		if err != nil {
			return nil, fmt.Errorf("parse FAULTS: %w", err)
		}
		for _, r := range rules {
			a.faults.Set(r)
		}
	}

	deps := api.Deps{
		Store:  a.store,
		Tokens: a.tokens,
		Faults: a.faults,
	}
	if cfg.PushEnabled() {
		rdb, err := push.Connect(ctx, cfg.Push.RedisAddr, cfg.Push.RedisPassword)
		if err != nil {
			a.log.Warn("push disabled", slog.String("error", err.Error()))
		} else {
			a.rdb = rdb
			deps.Publisher = push.NewPublisher(rdb, cfg.Push.Prefix)
		}
	}

	a.handler = api.New(deps, log)
	a.srv = &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return a, nil
}

// Handler отдает роутер (для httptest)
func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Store() *store.Store {
	return a.store
}

func (a *App) Faults() *fault.Injector {
	return a.faults
}

// Run слушает адрес до отмены ctx, затем останавливает сервер
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.srv.Addr, err)
	}
	return a.Serve(ctx, ln)
}

func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("sandbox listening", slog.String("addr", ln.Addr().String()))
		err := a.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info("shutting down sandbox")
	err := a.srv.Shutdown(ctx)
	if a.rdb != nil {
		err = errors.Join(err, a.rdb.Close())
	}
	return err
}
