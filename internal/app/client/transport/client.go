// Package transport — единственная точка сетевого ввода-вывода клиента:
// базовый URL, общая карта заголовков (включая bearer-токен), нормализация ошибок.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"pressroom/internal/app/client/session"
	"pressroom/internal/domain/pagination"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Pressroom-Client/1.0"
)

// UnauthorizedHook вызывается на каждый ответ 401
type UnauthorizedHook func(ctx context.Context, req *http.Request)

type Options struct {
	BaseURL        string
	Timeout        time.Duration
	UserAgent      string
	HTTPClient     *http.Client
	OnUnauthorized UnauthorizedHook
}

// Client держит один общий http.Client и карту заголовков по умолчанию.
// Все ресурсные API фасада ходят в сеть через один экземпляр Client.
type Client struct {
	http    *http.Client
	baseURL string
	log     *slog.Logger

	mu             sync.RWMutex
	header         http.Header
	generation     uint64
	onUnauthorized UnauthorizedHook
}

func New(opts Options, log *slog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	httpCl := opts.HTTPClient
	if httpCl == nil {
		httpCl = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		}
	}

	c := &Client{
		http:    httpCl,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		log:     log.With(slog.String("component", "transport")),
		header:  make(http.Header),
	}
	c.header.Set("Content-Type", "application/json")
	c.header.Set("Accept", "application/json")
	c.header.Set("User-Agent", opts.UserAgent)

	c.onUnauthorized = opts.OnUnauthorized
	if c.onUnauthorized == nil {
		c.onUnauthorized = func(_ context.Context, req *http.Request) {
			c.log.Warn("unauthorized access", slog.String("url", req.URL.String()))
		}
	}

	return c
}

// BaseURL возвращает базовый адрес API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetUnauthorizedHook заменяет обработчик ответов 401
func (c *Client) SetUnauthorizedHook(h UnauthorizedHook) {
	if h == nil {
		return
	}
	c.mu.Lock()
	c.onUnauthorized = h
	c.mu.Unlock()
}

// SetHeader устанавливает заголовок по умолчанию
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	c.header.Set(key, value)
	c.mu.Unlock()
}

// DelHeader удаляет заголовок по умолчанию целиком
func (c *Client) DelHeader(key string) {
	c.mu.Lock()
	c.header.Del(key)
	c.mu.Unlock()
}

// Header возвращает копию заголовков по умолчанию
func (c *Client) Header() http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header.Clone()
}

// Generation — номер текущей примененной сессии
func (c *Client) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Apply применяет сессию к общему транспорту: для непустого токена
// ставит Authorization: Bearer <token>, для пустого удаляет заголовок.
// Новый токен полностью заменяет прежний. Возвращает сессию с новым поколением.
func (c *Client) Apply(s session.Session) session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.Authenticated() {
		c.header.Set("Authorization", s.AuthorizationHeader())
	} else {
		c.header.Del("Authorization")
	}
	c.generation++

	return s.WithGeneration(c.generation)
}

// Bind возвращает эндпоинт с префиксом пути, привязанный к сессии
func (c *Client) Bind(s session.Session, prefix string) *Endpoint {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return &Endpoint{
		client:  c,
		session: s,
		prefix:  prefix,
	}
}

// snapshot атомарно проверяет поколение и снимает копию заголовков
func (c *Client) snapshot(gen uint64) (http.Header, UnauthorizedHook, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if gen != c.generation {
		return nil, nil, ErrStaleSession
	}
	return c.header.Clone(), c.onUnauthorized, nil
}

func (c *Client) do(ctx context.Context, gen uint64, method, path string, query url.Values, body any) ([]byte, error) {
	header, onUnauthorized, err := c.snapshot(gen)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = header

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("method", method),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	c.log.Debug("response received",
		slog.String("method", method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		onUnauthorized(ctx, req)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, responseError(resp.StatusCode, data)
	}

	return data, nil
}

// Endpoint — ресурсный префикс пути, привязанный к сессии.
// Запрос через эндпоинт устаревшего поколения отклоняется с ErrStaleSession.
type Endpoint struct {
	client  *Client
	session session.Session
	prefix  string
}

// Session возвращает сессию, на которой собран эндпоинт
func (e *Endpoint) Session() session.Session {
	return e.session
}

// Stale — сессия эндпоинта уже заменена в транспорте
func (e *Endpoint) Stale() bool {
	return e.session.Generation() != e.client.Generation()
}

func (e *Endpoint) path(p string) string {
	if p == "" {
		return e.prefix
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return e.prefix + p
}

// Raw выполняет запрос и возвращает тело ответа как есть
func (e *Endpoint) Raw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	return e.client.do(ctx, e.session.Generation(), method, e.path(path), query, body)
}

func (e *Endpoint) call(ctx context.Context, method, path string, query url.Values, body any, dec Decoder, out any) error {
	data, err := e.Raw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if dec == nil {
		dec = Raw
	}
	return dec(data, out)
}

func (e *Endpoint) Get(ctx context.Context, path string, query url.Values, dec Decoder, out any) error {
	return e.call(ctx, http.MethodGet, path, query, nil, dec, out)
}

func (e *Endpoint) Post(ctx context.Context, path string, body any, dec Decoder, out any) error {
	return e.call(ctx, http.MethodPost, path, nil, body, dec, out)
}

func (e *Endpoint) Put(ctx context.Context, path string, body any, dec Decoder, out any) error {
	return e.call(ctx, http.MethodPut, path, nil, body, dec, out)
}

func (e *Endpoint) Patch(ctx context.Context, path string, body any, dec Decoder, out any) error {
	return e.call(ctx, http.MethodPatch, path, nil, body, dec, out)
}

func (e *Endpoint) Remove(ctx context.Context, path string, dec Decoder, out any) error {
	return e.call(ctx, http.MethodDelete, path, nil, nil, dec, out)
}

// List запрашивает offset-коллекцию; metaKey — имя поля метаданных этого семейства
func List[T any](ctx context.Context, e *Endpoint, path string, query url.Values, metaKey string) (*pagination.OffsetPage[T], error) {
	data, err := e.Raw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return DecodeOffset[T](data, metaKey)
}

// Cursor запрашивает курсорную страницу
func Cursor[T any](ctx context.Context, e *Endpoint, path string, query url.Values) (*pagination.CursorPage[T], error) {
	data, err := e.Raw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return DecodeCursor[T](data)
}
