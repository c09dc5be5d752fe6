package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api/http/middleware/fault"
	"pressroom/internal/app/server/store"
)

type Stats interface {
	Stats() store.Stats
}

type Faults interface {
	Rules() []fault.Rule
}

type Handler struct {
	stats      Stats
	faults     Faults
	log        *slog.Logger
	middleware huma.Middlewares
	started    time.Time
}

func NewHandler(stats Stats, faults Faults, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		stats:      stats,
		faults:     faults,
		log:        log.With(slog.String("component", "health_handler")),
		middleware: middleware,
		started:    time.Now(),
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	resp := Response{
		Status: "OK",
		Uptime: time.Since(h.started).Truncate(time.Second).String(),
		Data:   h.stats.Stats(),
		Faults: len(h.faults.Rules()),
	}
	// активные сбои означают, что песочница отвечает не как обычно
	if resp.Faults > 0 {
		resp.Status = "DEGRADED"
	}
	h.log.Debug("health check", slog.String("status", resp.Status))

	return &Output{Body: resp}, nil
}
