// Package sandbox — служебные ручки песочницы для управления сбоями.
package sandbox

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pressroom/internal/app/server/api/http/middleware/fault"
	"pressroom/internal/app/server/api/http/respond"
)

type Faults interface {
	Set(r fault.Rule)
	Clear(method, path string)
	Reset()
	Rules() []fault.Rule
}

type Handler struct {
	faults     Faults
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(faults Faults, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		faults:     faults,
		log:        log.With(slog.String("component", "sandbox_handler")),
		middleware: middleware,
	}
}

type emptyInput struct{}

type ruleInput struct {
	Body fault.Rule
}

type clearInput struct {
	Method string `query:"method"`
	Path   string `query:"path"`
}

type rulesOutput struct {
	Body respond.Envelope[[]fault.Rule]
}

func (h *Handler) op(id, method, summary string) huma.Operation {
	return huma.Operation{
		OperationID: id,
		Method:      method,
		Path:        "/api/sandbox/faults",
		Summary:     summary,
		Tags:        []string{"sandbox"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.op("sandbox-faults-list", http.MethodGet, "Активные правила сбоев"), h.list)
	huma.Register(api, h.op("sandbox-faults-set", http.MethodPut, "Установить правило сбоя"), h.set)
	huma.Register(api, h.op("sandbox-faults-clear", http.MethodDelete, "Снять правило или все правила"), h.clear)
}

func (h *Handler) list(_ context.Context, _ *emptyInput) (*rulesOutput, error) {
	return &rulesOutput{Body: respond.OK(h.faults.Rules())}, nil
}

func (h *Handler) set(_ context.Context, input *ruleInput) (*rulesOutput, error) {
	h.faults.Set(input.Body)
	return &rulesOutput{Body: respond.OK(h.faults.Rules())}, nil
}

// clear без параметров снимает все правила
func (h *Handler) clear(_ context.Context, input *clearInput) (*rulesOutput, error) {
	switch {
	case input.Method == "" && input.Path == "":
		h.faults.Reset()
		h.log.Info("fault rules reset")
	case input.Method == "" || input.Path == "":
		return nil, respond.Validation("path", "method and path must be given together")
	default:
		h.faults.Clear(input.Method, input.Path)
	}
	return &rulesOutput{Body: respond.OK(h.faults.Rules())}, nil
}
