package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/client/api"
	"pressroom/internal/app/client/call"
	"pressroom/internal/app/client/config"
	"pressroom/internal/app/client/notifications"
	"pressroom/internal/app/client/preferences"
	"pressroom/internal/app/client/profile"
	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/storage"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/infrastructure/push"
	"pressroom/internal/model"
)

var (
	ErrNotAuthenticated = errors.New("пользователь не аутентифицирован")
	ErrNoRefreshToken   = errors.New("нет refresh-токена")
	ErrPushDisabled     = errors.New("push-события не настроены")
)

// Storage — локальное хранилище клиента
type Storage interface {
	preferences.Store
	SaveSession(ctx context.Context, s session.Session) error
	LoadSession(ctx context.Context) (session.Session, error)
	Close() error
}

// Task — фоновая задача, которую App запускает в Run
type Task func(ctx context.Context) error

type App struct {
	config    *config.Config
	log       *slog.Logger
	transport *transport.Client
	apis      *api.APIs
	storage   Storage
	profile   *profile.Profile
	prefs     *preferences.Manager
	caller    *call.Caller
	now       func() time.Time

	// authMu упорядочивает смены сессии: вход, выход, обновление токена
	authMu sync.Mutex

	rdbMu sync.Mutex
	rdb   *redis.Client

	wg sync.WaitGroup

	runMu  sync.Mutex
	cancel context.CancelFunc
}

type Option func(*options)

type options struct {
	notifier   call.Notifier
	httpClient *http.Client
	storage    Storage
	now        func() time.Time
}

// WithNotifier задает, как пользователю показываются ошибки запросов
func WithNotifier(n call.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithStorage подменяет локальное хранилище (по умолчанию SQLite по cfg.DataPath)
func WithStorage(s Storage) Option {
	return func(o *options) { o.storage = s }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	store := o.storage
	if store == nil {
		sqliteStore, err := storage.Open(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
		}
		store = sqliteStore
	}

	a := &App{
		config:  cfg,
		log:     log,
		storage: store,
		now:     o.now,
	}

	a.transport = transport.New(transport.Options{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.RequestTimeout,
		HTTPClient:     o.httpClient,
		OnUnauthorized: a.onUnauthorized,
	}, log)
	a.apis = api.New(a.transport)

	a.profile = profile.New(func() profile.Service { return a.apis.Users() })
	a.prefs = preferences.NewManager(store, func() preferences.Service { return a.apis.Users() }, log)

	notifier := o.notifier
	if notifier == nil {
		notifier = call.NotifierFunc(func(f *call.Failure) {
			log.Warn("Ошибка запроса", "kind", f.Kind.String(), "status", f.Status, "message", f.Message)
		})
	}
	a.caller = call.NewCaller(notifier, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.prefs.Load(ctx); err != nil {
		log.Warn("Не удалось загрузить настройки", "error", err)
	}

	// Загружаем сохраненную сессию, если она есть
	saved, err := store.LoadSession(ctx)
	if err != nil {
		log.Warn("Не удалось загрузить сессию", "error", err)
		saved = session.Anonymous()
	}
	a.apis.Transition(saved)
	if saved.Authenticated() {
		log.Debug("Токен загружен из хранилища", "subject", saved.Subject())
	}

	return a, nil
}

// APIs — фасад ресурсных API; ресурсы нужно перечитывать на каждую операцию
func (a *App) APIs() *api.APIs {
	return a.apis
}

func (a *App) Session() session.Session {
	return a.apis.Session()
}

func (a *App) Authenticated() bool {
	return a.apis.Session().Authenticated()
}

func (a *App) Caller() *call.Caller {
	return a.caller
}

func (a *App) Profile() *profile.Profile {
	return a.profile
}

func (a *App) Preferences() *preferences.Manager {
	return a.prefs
}

// Restore подтягивает профиль и настройки для сессии, загруженной при старте
func (a *App) Restore(ctx context.Context) error {
	a.authMu.Lock()
	defer a.authMu.Unlock()
	return a.afterTransition(ctx, a.apis.Session())
}

// SetToken применяет новый bearer-токен ко всем ресурсным API
func (a *App) SetToken(ctx context.Context, token string) error {
	return a.SetSession(ctx, session.New(token))
}

// SetSession меняет сессию: транспорт и ресурсы пересобираются атомарно,
// затем сессия сохраняется локально, профиль и настройки перечитываются.
// Тот же токен повторно не применяется.
func (a *App) SetSession(ctx context.Context, s session.Session) error {
	a.authMu.Lock()
	defer a.authMu.Unlock()
	return a.setSession(ctx, s)
}

func (a *App) setSession(ctx context.Context, s session.Session) error {
	current := a.apis.Session()
	// голый токен того же пользователя сохраняет имеющийся refresh-токен
	if s.Authenticated() && s.RefreshToken() == "" && s.Subject() == current.Subject() {
		s = s.WithRefreshToken(current.RefreshToken())
	}
	if current.SameToken(s) && current.RefreshToken() == s.RefreshToken() {
		return nil
	}

	a.apis.Transition(s)

	if err := a.storage.SaveSession(ctx, s); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	if s.Authenticated() {
		a.log.Info("Сессия обновлена", "subject", s.Subject())
	} else {
		a.log.Info("Сессия сброшена")
	}

	// Сбой сети здесь не отменяет смену сессии
	if err := a.afterTransition(ctx, s); err != nil {
		a.log.Warn("Не удалось загрузить профиль", "error", err)
	}
	return nil
}

// afterTransition перечитывает зависящее от пользователя состояние
func (a *App) afterTransition(ctx context.Context, s session.Session) error {
	a.profile.Clear()
	if s.Authenticated() {
		if err := a.prefs.Sync(ctx); err != nil {
			a.log.Warn("Не удалось синхронизировать настройки", "error", err)
		}
	}
	return a.profile.Reload(ctx, s.Authenticated())
}

func sessionFrom(res *model.AuthResult, fallbackRefresh string) session.Session {
	refresh := res.RefreshToken
	if refresh == "" {
		refresh = fallbackRefresh
	}
	return session.New(res.Token).WithRefreshToken(refresh)
}

// Login выполняет вход и переключает сессию
func (a *App) Login(ctx context.Context, email, password string) (*model.User, error) {
	a.authMu.Lock()
	defer a.authMu.Unlock()

	res, err := a.apis.Auth().Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := a.setSession(ctx, sessionFrom(res, "")); err != nil {
		return nil, err
	}

	a.log.Info("Вход выполнен", "email", email)
	return a.currentUser(res.User), nil
}

func (a *App) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	a.authMu.Lock()
	defer a.authMu.Unlock()

	res, err := a.apis.Auth().Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.setSession(ctx, sessionFrom(res, "")); err != nil {
		return nil, err
	}

	a.log.Info("Пользователь зарегистрирован", "username", req.Username)
	return a.currentUser(res.User), nil
}

func (a *App) currentUser(fallback *model.User) *model.User {
	if u := a.profile.Current(); u != nil {
		return u
	}
	return fallback
}

// Logout сообщает серверу о выходе (best-effort) и переходит в анонимную сессию
func (a *App) Logout(ctx context.Context) error {
	a.authMu.Lock()
	defer a.authMu.Unlock()

	if a.apis.Session().Authenticated() {
		if err := a.apis.Auth().Logout(ctx); err != nil {
			a.log.Warn("Сервер не подтвердил выход", "error", err)
		}
	}
	return a.setSession(ctx, session.Anonymous())
}

// Refresh обменивает refresh-токен на новый access-токен
func (a *App) Refresh(ctx context.Context) error {
	a.authMu.Lock()
	defer a.authMu.Unlock()
	return a.refresh(ctx)
}

func (a *App) refresh(ctx context.Context) error {
	s := a.apis.Session()
	if s.RefreshToken() == "" {
		return ErrNoRefreshToken
	}

	res, err := a.apis.Auth().Refresh(ctx, s.RefreshToken())
	if err != nil {
		return fmt.Errorf("ошибка обновления токена: %w", err)
	}
	return a.setSession(ctx, sessionFrom(res, s.RefreshToken()))
}

// EnsureFresh обновляет токен, если он истекает в пределах RefreshSkew
func (a *App) EnsureFresh(ctx context.Context) error {
	a.authMu.Lock()
	defer a.authMu.Unlock()

	s := a.apis.Session()
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	if !s.ExpiresWithin(a.now(), a.config.RefreshSkew) {
		return nil
	}
	return a.refresh(ctx)
}

func (a *App) onUnauthorized(_ context.Context, req *http.Request) {
	a.log.Warn("Сервер отклонил токен", "method", req.Method, "url", req.URL.Path)
}

// NewNotificationCenter создает ленту уведомлений поверх текущего фасада
func (a *App) NewNotificationCenter(opts ...notifications.Option) *notifications.Center {
	opts = append([]notifications.Option{
		notifications.WithLimit(a.config.PageLimit),
		notifications.WithClock(a.now),
	}, opts...)
	return notifications.NewCenter(func() notifications.Service {
		return a.apis.Notifications()
	}, a.log, opts...)
}

// PushSource возвращает подписку на push-события текущего пользователя
func (a *App) PushSource(ctx context.Context) (notifications.EventSource, error) {
	if !a.config.PushEnabled() {
		return nil, ErrPushDisabled
	}

	s := a.apis.Session()
	if !s.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	userID := s.Subject()
	if u := a.profile.Current(); u != nil {
		userID = u.ID
	}
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	a.rdbMu.Lock()
	defer a.rdbMu.Unlock()
	if a.rdb == nil {
		rdb, err := push.Connect(ctx, a.config.RedisAddr, a.config.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
		}
		a.rdb = rdb
	}

	return push.NewSubscriber(a.rdb, a.config.PushPrefix, userID, a.log), nil
}

// Run запускает фоновые задачи и обновление токена; возвращается после
// сигнала завершения или Shutdown
func (a *App) Run(tasks ...Task) error {
	ctx, cancel := context.WithCancel(context.Background())
	a.runMu.Lock()
	a.cancel = cancel
	a.runMu.Unlock()
	defer cancel()

	go a.handleSignals(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.startRefresher(ctx)
	}()

	errs := make(chan error, len(tasks))
	for _, task := range tasks {
		a.wg.Add(1)
		go func(task Task) {
			defer a.wg.Done()
			if err := task(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errs <- err
				cancel()
			}
		}(task)
	}

	a.log.Info("Клиент запущен",
		"server", a.config.APIBaseURL,
		"env", a.config.Env,
	)

	a.wg.Wait()
	close(errs)

	var result error
	for err := range errs {
		result = errors.Join(result, err)
	}
	return result
}

func (a *App) startRefresher(ctx context.Context) {
	interval := a.config.RefreshSkew / 2
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := a.EnsureFresh(ctx)
			if err != nil && !errors.Is(err, ErrNotAuthenticated) && !errors.Is(err, ErrNoRefreshToken) {
				a.log.Warn("Не удалось обновить токен", "error", err)
			}
		}
	}
}

func (a *App) handleSignals(ctx context.Context) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		return
	case sig := <-sigChan:
		a.log.Info("Получен сигнал завершения", "signal", sig.String())
	}

	a.stop()
}

func (a *App) stop() {
	a.runMu.Lock()
	cancel := a.cancel
	a.runMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) Shutdown() {
	a.log.Info("Завершение работы клиента...")

	a.stop()

	a.wg.Wait()
	a.log.Info("Клиент завершил работу")
}

// Close освобождает хранилище и соединение с Redis
func (a *App) Close() error {
	var errs []error
	a.rdbMu.Lock()
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
		a.rdb = nil
	}
	a.rdbMu.Unlock()
	errs = append(errs, a.storage.Close())
	return errors.Join(errs...)
}
