package health

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/app/server/api/http/middleware/fault"
	"pressroom/internal/app/server/store"
	"pressroom/internal/utils/logger"
)

func newHandler(t *testing.T) (*Handler, *fault.Injector) {
	t.Helper()
	st := store.New()
	_, err := st.Seed(store.SeedOptions{Channels: 3, News: 2, Notifications: 1})
	require.NoError(t, err)

	faults := fault.New(logger.Discard())
	return NewHandler(st, faults, logger.Discard(), huma.Middlewares{}), faults
}

func TestHandler_healthCheck(t *testing.T) {
	handler, faults := newHandler(t)

	output, err := handler.healthCheck(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, "OK", output.Body.Status)
	assert.NotEmpty(t, output.Body.Uptime)
	assert.Equal(t, 3, output.Body.Data.Channels)
	assert.Equal(t, 2, output.Body.Data.News)
	assert.Positive(t, output.Body.Data.Users)

	faults.Set(fault.Rule{Method: "GET", Path: "/api/news", Status: 503})
	output, err = handler.healthCheck(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, "DEGRADED", output.Body.Status)
	assert.Equal(t, 1, output.Body.Faults)
}

func TestHandler_healthCheckOp(t *testing.T) {
	handler, _ := newHandler(t)

	op := handler.healthCheckOp()

	assert.Equal(t, "/api/health", op.Path)
	assert.Equal(t, "GET", op.Method)
}
