package api

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/app/client/session"
	"pressroom/internal/app/client/transport"
)

func TestAPIs_HeaderExclusivity(t *testing.T) {
	rec, tr := newRecorder(t)
	rec.on(http.MethodGet, "/api/users/me", http.StatusOK, `{"id":"u1"}`)
	apis := New(tr)
	ctx := context.Background()

	_, err := apis.Users().GetMe(ctx)
	require.NoError(t, err)
	_, present := rec.last().Header["Authorization"]
	assert.False(t, present)

	apis.SetAuthHeader("first").SetApis()
	_, err = apis.Users().GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer first"}, rec.last().Header.Values("Authorization"))

	apis.SetAuthHeader("second").SetApis()
	_, err = apis.Users().GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer second"}, rec.last().Header.Values("Authorization"))

	apis.SetAuthHeader("").SetApis()
	_, err = apis.Users().GetMe(ctx)
	require.NoError(t, err)
	_, present = rec.last().Header["Authorization"]
	assert.False(t, present)
}

func TestAPIs_CachedResourceGoesStale(t *testing.T) {
	rec, tr := newRecorder(t)
	apis := New(tr)
	cached := apis.Users()

	apis.Transition(session.New("tok"))

	_, err := cached.GetMe(context.Background())
	assert.ErrorIs(t, err, transport.ErrStaleSession)
	assert.Empty(t, rec.all())

	_, err = apis.Users().GetMe(context.Background())
	assert.NoError(t, err)
}

func TestAPIs_SetAuthHeaderWithoutSetApisLeavesResourcesStale(t *testing.T) {
	_, tr := newRecorder(t)
	apis := New(tr)

	apis.SetAuthHeader("tok")
	_, err := apis.Users().GetMe(context.Background())
	assert.ErrorIs(t, err, transport.ErrStaleSession)

	apis.SetApis()
	_, err = apis.Users().GetMe(context.Background())
	assert.NoError(t, err)
}

func TestAPIs_ResourcesShareOneTransport(t *testing.T) {
	_, tr := newRecorder(t)
	apis := New(tr).Transition(session.New("tok"))

	assert.Same(t, tr, apis.Transport())
	assert.Equal(t, "tok", apis.Session().Token())
	assert.Equal(t, apis.Session().Generation(), tr.Generation())
	assert.NotNil(t, apis.Admin().Payouts)
}

func TestAPIs_ConcurrentTransitions(t *testing.T) {
	_, tr := newRecorder(t)
	apis := New(tr)

	var wg sync.WaitGroup
	for _, tok := range []string{"a", "b", "c", "d", ""} {
		wg.Add(1)
		go func(tok string) {
			defer wg.Done()
			apis.Transition(session.New(tok))
			_ = apis.News()
		}(tok)
	}
	wg.Wait()

	// последняя примененная сессия и собранные ресурсы согласованы
	assert.Equal(t, tr.Generation(), apis.Session().Generation())
	assert.Equal(t, apis.Session().AuthorizationHeader(), tr.Header().Get("Authorization"))
	_, err := apis.Users().GetMe(context.Background())
	assert.NoError(t, err)
}
