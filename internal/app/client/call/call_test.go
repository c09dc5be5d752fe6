package call

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/app/client/api"
	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
	"pressroom/internal/utils/logger"
)

// transportError получает настоящую нормализованную ошибку транспорта
func transportError(t *testing.T, status int, body string) error {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := transport.New(transport.Options{BaseURL: srv.URL}, logger.Discard())
	err := c.Bind(c.Apply(session.Anonymous()), "/api").Get(context.Background(), "/x", nil, transport.Raw, nil)
	require.Error(t, err)
	return err
}

func networkError(t *testing.T) error {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := transport.New(transport.Options{BaseURL: addr}, logger.Discard())
	err := c.Bind(c.Apply(session.Anonymous()), "").Get(context.Background(), "/x", nil, transport.Raw, nil)
	require.Error(t, err)
	return err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
		fields  []FieldError
	}{
		{
			name:    "validation",
			err:     transportError(t, 400, `{"status":"error","message":"Validation failed","errors":[{"field":"email","message":"must be a valid email"}]}`),
			kind:    KindValidation,
			message: "Validation failed",
			fields:  []FieldError{{Field: "email", Message: "must be a valid email"}},
		},
		{
			name:    "plain 400 is a client error",
			err:     transportError(t, 400, `{"message":"bad slug"}`),
			kind:    KindClient,
			message: "bad slug",
		},
		{
			name:    "auth",
			err:     transportError(t, 401, `{"error":"Unauthorized"}`),
			kind:    KindAuth,
			message: MsgAuth,
		},
		{
			name:    "server",
			err:     transportError(t, 503, `oops`),
			kind:    KindServer,
			message: MsgServer,
		},
		{
			name:    "network",
			err:     networkError(t),
			kind:    KindNetwork,
			message: MsgNetwork,
		},
		{
			name:    "conflict with body message",
			err:     transportError(t, 409, `{"message":"already subscribed"}`),
			kind:    KindClient,
			message: "already subscribed",
		},
		{
			name:    "4xx without message falls back to transport text",
			err:     transportError(t, 404, ``),
			kind:    KindClient,
			message: "request failed with status 404",
		},
		{
			name: "local validation",
			err:  fmt.Errorf("%w: email (required)", api.ErrInvalidRequest),
			kind: KindValidation,
		},
		{
			name: "canceled",
			err:  fmt.Errorf("list: %w", context.Canceled),
			kind: KindCanceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.err)
			require.NotNil(t, f)
			assert.Equal(t, tt.kind, f.Kind, f.Kind.String())
			if tt.message != "" {
				assert.Equal(t, tt.message, f.Message)
			}
			if tt.fields != nil {
				assert.Equal(t, tt.fields, f.Fields)
			}
			assert.ErrorIs(t, f, tt.err)
		})
	}

	assert.Nil(t, Classify(nil))
}

func TestCaller_NotifiesByDefault(t *testing.T) {
	var got []*Failure
	c := NewCaller(NotifierFunc(func(f *Failure) { got = append(got, f) }), logger.Discard())
	srvErr := transportError(t, 500, `{}`)

	err := c.Do(context.Background(), func(context.Context) error { return srvErr })

	assert.ErrorIs(t, err, srvErr)
	require.Len(t, got, 1)
	assert.Equal(t, KindServer, got[0].Kind)
}

func TestCaller_HandlerSuppressesDefault(t *testing.T) {
	var notified int
	c := NewCaller(NotifierFunc(func(*Failure) { notified++ }), logger.Discard())
	conflict := transportError(t, 409, `{"message":"exists"}`)

	var handled *Failure
	_, err := Run(context.Background(), c, func(context.Context) (string, error) {
		return "", conflict
	}, WithHandler(http.StatusConflict, func(f *Failure) bool {
		handled = f
		return true
	}))

	require.Error(t, err)
	require.NotNil(t, handled)
	assert.Equal(t, "exists", handled.Message)
	assert.Zero(t, notified)

	// обработчик другого статуса не мешает уведомлению
	err = c.Do(context.Background(), func(context.Context) error { return conflict },
		WithHandler(http.StatusNotFound, func(*Failure) bool { return true }))
	require.Error(t, err)
	assert.Equal(t, 1, notified)
}

func TestCaller_HandlerCanFallThrough(t *testing.T) {
	var notified int
	c := NewCaller(NotifierFunc(func(*Failure) { notified++ }), logger.Discard())
	conflict := transportError(t, 409, `{}`)

	_ = c.Do(context.Background(), func(context.Context) error { return conflict },
		WithHandler(http.StatusConflict, func(*Failure) bool { return false }))
	assert.Equal(t, 1, notified)
}

func TestCaller_SilentAndCanceled(t *testing.T) {
	var notified int
	c := NewCaller(NotifierFunc(func(*Failure) { notified++ }), logger.Discard())

	_ = c.Do(context.Background(), func(context.Context) error { return errors.New("x") }, Silent())
	_ = c.Do(context.Background(), func(context.Context) error { return context.Canceled })
	assert.Zero(t, notified)
}

func TestRun_Success(t *testing.T) {
	c := NewCaller(nil, logger.Discard())
	got, err := Run(context.Background(), c, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
