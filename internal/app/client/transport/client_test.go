package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/app/client/session"
	"pressroom/internal/utils/logger"
)

type captured struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   string
}

func newTestServer(t *testing.T, status int, body string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if got != nil {
			*got = captured{
				method: r.Method,
				path:   r.URL.Path,
				query:  r.URL.Query(),
				header: r.Header.Clone(),
				body:   string(b),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestApply_SetsAndRemovesAuthorization(t *testing.T) {
	c := New(Options{BaseURL: "http://example"}, logger.Discard())

	s := c.Apply(session.New("token-a"))
	assert.Equal(t, "Bearer token-a", c.Header().Get("Authorization"))
	assert.Equal(t, uint64(1), s.Generation())

	s = c.Apply(session.New("token-b"))
	assert.Equal(t, []string{"Bearer token-b"}, c.Header().Values("Authorization"))
	assert.Equal(t, uint64(2), s.Generation())

	c.Apply(session.Anonymous())
	_, present := c.Header()["Authorization"]
	assert.False(t, present, "header must be absent, not empty")
}

func TestEndpoint_SendsDefaultHeaders(t *testing.T) {
	var got captured
	srv := newTestServer(t, http.StatusOK, `{"id":"n1"}`, &got)
	c := New(Options{BaseURL: srv.URL}, logger.Discard())
	s := c.Apply(session.New("tok"))

	var out struct {
		ID string `json:"id"`
	}
	err := c.Bind(s, "/api/news").Post(context.Background(), "/n1/like", map[string]string{"a": "b"}, Raw, &out)
	require.NoError(t, err)

	assert.Equal(t, "n1", out.ID)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/news/n1/like", got.path)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok", got.header.Get("Authorization"))
	assert.JSONEq(t, `{"a":"b"}`, got.body)
}

func TestEndpoint_StaleSessionRefused(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL}, logger.Discard())
	old := c.Bind(c.Apply(session.New("a")), "/api")
	fresh := c.Bind(c.Apply(session.Anonymous()), "/api")

	assert.True(t, old.Stale())
	err := old.Get(context.Background(), "/x", nil, Raw, nil)
	assert.ErrorIs(t, err, ErrStaleSession)
	assert.Equal(t, int32(0), calls.Load())

	require.NoError(t, fresh.Get(context.Background(), "/x", nil, Raw, nil))
	assert.Equal(t, int32(1), calls.Load())
}

func TestEndpoint_NormalizesServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusConflict, `{"message":"already subscribed"}`, nil)
	c := New(Options{BaseURL: srv.URL}, logger.Discard())
	e := c.Bind(c.Apply(session.Anonymous()), "/api/channels")

	err := e.Post(context.Background(), "/c1/subscribe", nil, Raw, nil)
	require.Error(t, err)

	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusConflict, te.Status)
	assert.Equal(t, "already subscribed", te.Message())
	assert.False(t, te.IsNetwork())
	assert.True(t, IsStatus(err, http.StatusConflict))
	assert.Equal(t, http.StatusConflict, StatusOf(err))
}

func TestEndpoint_NormalizesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := New(Options{BaseURL: addr}, logger.Discard())
	e := c.Bind(c.Apply(session.Anonymous()), "/api")

	err := e.Get(context.Background(), "/health", nil, Raw, nil)
	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.Equal(t, NetworkErrorMessage, te.Data)
	assert.True(t, te.IsNetwork())
	assert.False(t, IsStatus(err, http.StatusInternalServerError))
}

func TestEndpoint_ContextCanceled(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{}`, nil)
	c := New(Options{BaseURL: srv.URL}, logger.Discard())
	e := c.Bind(c.Apply(session.Anonymous()), "/api")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Get(ctx, "/x", nil, Raw, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnauthorizedHook(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, `{"error":"Unauthorized"}`, nil)

	var hits atomic.Int32
	c := New(Options{
		BaseURL: srv.URL,
		OnUnauthorized: func(_ context.Context, req *http.Request) {
			hits.Add(1)
		},
	}, logger.Discard())
	e := c.Bind(c.Apply(session.New("expired")), "/api")

	err := e.Get(context.Background(), "/users/me", nil, Raw, nil)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, int32(1), hits.Load())
}

func TestEnvelope(t *testing.T) {
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, Envelope([]byte(`{"success":true,"data":{"count":3}}`), &out))
	assert.Equal(t, 3, out.Count)

	err := Envelope([]byte(`{"success":false,"message":"nope"}`), &out)
	assert.ErrorIs(t, err, ErrUnsuccessful)
	assert.Contains(t, err.Error(), "nope")

	require.NoError(t, Envelope([]byte(`{"success":true,"data":null}`), &out))
}

func TestDecodeOffset(t *testing.T) {
	body := []byte(`{"items":[{"id":"a"},{"id":"b"}],"metadata":{"total":12,"pageCount":2,"currentPage":1,"hasNext":true,"hasPrev":false,"limit":10}}`)

	type item struct {
		ID string `json:"id"`
	}
	page, err := DecodeOffset[item](body, MetadataKey)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.Meta.HasNext)
	assert.Equal(t, 12, page.Meta.Total)

	_, err = DecodeOffset[item](body, MetaKey)
	assert.Error(t, err, "meta key of a different family must not be accepted")
}

func TestDecodeCursor(t *testing.T) {
	type item struct {
		ID string `json:"id"`
	}
	page, err := DecodeCursor[item]([]byte(`{"items":null,"metadata":{"hasMore":false}}`))
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.False(t, page.Metadata.HasMore)
}
