// Package call — прослойка между клиентом API и интерфейсом: классифицирует
// ошибки и решает, показывать ли пользователю уведомление.
package call

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/exp/slog"

	"pressroom/internal/app/client/api"
	"pressroom/internal/app/client/transport"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindServer
	KindNetwork
	KindClient
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindClient:
		return "client"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Сообщения по умолчанию
const (
	MsgAuth    = "Please log in again"
	MsgServer  = "Something went wrong, please try again later"
	MsgNetwork = "Please check your connection"
)

// FieldError — ошибка одного поля из ответа валидации
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Failure — классифицированная ошибка вызова
type Failure struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (f *Failure) Error() string {
	if len(f.Fields) == 0 {
		return f.Message
	}
	parts := make([]string, 0, len(f.Fields))
	for _, fe := range f.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s (%s)", f.Message, strings.Join(parts, "; "))
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify раскладывает ошибку по видам
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	if errors.Is(err, context.Canceled) {
		return &Failure{Kind: KindCanceled, Message: "canceled", Err: err}
	}
	if errors.Is(err, api.ErrInvalidRequest) {
		return &Failure{Kind: KindValidation, Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}

	var te *transport.Error
	if !errors.As(err, &te) {
		return &Failure{Kind: KindUnknown, Message: err.Error(), Err: err}
	}

	switch {
	case te.IsNetwork():
		return &Failure{Kind: KindNetwork, Status: te.Status, Message: MsgNetwork, Err: err}
	case te.Status == http.StatusBadRequest && isValidationBody(te):
		return &Failure{
			Kind:    KindValidation,
			Status:  te.Status,
			Message: messageOr(te, "Validation failed"),
			Fields:  fieldErrors(te),
			Err:     err,
		}
	case te.Status == http.StatusUnauthorized:
		return &Failure{Kind: KindAuth, Status: te.Status, Message: MsgAuth, Err: err}
	case te.Status >= http.StatusInternalServerError:
		return &Failure{Kind: KindServer, Status: te.Status, Message: MsgServer, Err: err}
	default:
		return &Failure{Kind: KindClient, Status: te.Status, Message: messageOr(te, te.Error()), Err: err}
	}
}

func messageOr(te *transport.Error, fallback string) string {
	if msg := te.Message(); msg != "" {
		return msg
	}
	return fallback
}

// isValidationBody — тело вида {status: "error", errors: [...]}
func isValidationBody(te *transport.Error) bool {
	status, _ := te.Field("status")
	errs, ok := te.Field("errors")
	if !ok {
		return false
	}
	_, isList := errs.([]any)
	return status == "error" && isList
}

func fieldErrors(te *transport.Error) []FieldError {
	raw, _ := te.Field("errors")
	list, _ := raw.([]any)
	out := make([]FieldError, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		field, _ := m["field"].(string)
		msg, _ := m["message"].(string)
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

// Notifier показывает пользователю сообщение об ошибке
type Notifier interface {
	Notify(f *Failure)
}

type NotifierFunc func(f *Failure)

func (fn NotifierFunc) Notify(f *Failure) { fn(f) }

// Handler обрабатывает ошибку сам; true отменяет уведомление по умолчанию
type Handler func(f *Failure) bool

type options struct {
	silent   bool
	handlers map[int]Handler
}

type Option func(*options)

// WithHandler задает обработчик для конкретного HTTP-статуса
func WithHandler(status int, h Handler) Option {
	return func(o *options) {
		if o.handlers == nil {
			o.handlers = make(map[int]Handler)
		}
		o.handlers[status] = h
	}
}

// Silent отключает уведомления для вызова
func Silent() Option {
	return func(o *options) { o.silent = true }
}

// Caller — единственное место, где решается, показывать ли ошибку
type Caller struct {
	notifier Notifier
	log      *slog.Logger
}

func NewCaller(n Notifier, log *slog.Logger) *Caller {
	if n == nil {
		n = NotifierFunc(func(*Failure) {})
	}
	return &Caller{notifier: n, log: log.With(slog.String("component", "call"))}
}

// Do выполняет вызов. Ошибка всегда возвращается, повторов нет.
func (c *Caller) Do(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	return c.fail(err, opts)
}

// Run — Do для вызовов с результатом
func Run[T any](ctx context.Context, c *Caller, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	res, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, c.fail(err, opts)
	}
	return res, nil
}

func (c *Caller) fail(err error, opts []Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f := Classify(err)
	c.log.Debug("call failed",
		slog.String("kind", f.Kind.String()),
		slog.Int("status", f.Status),
		slog.String("error", err.Error()),
	)

	if h, ok := o.handlers[f.Status]; ok && f.Status != 0 && h(f) {
		return f
	}
	if o.silent || f.Kind == KindCanceled {
		return f
	}
	c.notifier.Notify(f)
	return f
}
