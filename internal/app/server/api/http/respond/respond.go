// Package respond — формы ответов песочницы: конверт {success, data, message}
// и ошибки {status: "error", message, errors: [{field, message}]}.
package respond

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"pressroom/internal/app/server/store"
	"pressroom/internal/app/server/token"
	"pressroom/internal/domain/pagination"
)

// Envelope — ответ в конверте
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

// Count — {count}
type Count struct {
	Count int `json:"count"`
}

// Empty — пустой data
type Empty struct{}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error — тело ошибки песочницы
type Error struct {
	code    int
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.code
}

// NewError заменяет huma.NewError: ошибки валидации huma (422) отдаются
// как 400 со списком полей
func NewError(status int, msg string, errs ...error) huma.StatusError {
	e := &Error{code: status, Status: "error", Message: msg}

	if status == http.StatusUnprocessableEntity || (status == http.StatusBadRequest && len(errs) > 0) {
		e.code = http.StatusBadRequest
		e.Errors = make([]FieldError, 0, len(errs))
		for _, err := range errs {
			e.Errors = append(e.Errors, fieldError(err))
		}
		if e.Message == "" {
			e.Message = "validation failed"
		}
	}
	return e
}

func fieldError(err error) FieldError {
	var detail *huma.ErrorDetail
	if errors.As(err, &detail) {
		field := detail.Location
		for _, prefix := range []string{"body.", "query.", "path.", "header."} {
			field = strings.TrimPrefix(field, prefix)
		}
		return FieldError{Field: field, Message: detail.Message}
	}
	return FieldError{Message: err.Error()}
}

var installOnce sync.Once

// Install подменяет конструктор ошибок huma на NewError
func Install() {
	installOnce.Do(func() {
		huma.NewError = NewError
	})
}

// Validation — 400 с ошибкой одного поля
func Validation(field, message string) error {
	return NewError(http.StatusBadRequest, "validation failed", &huma.ErrorDetail{
		Location: field,
		Message:  message,
	})
}

// FromDomain переводит ошибки хранилища и токенов в HTTP-ошибки
func FromDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("not found")
	case errors.Is(err, store.ErrConflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, store.ErrInvalidCredentials):
		return huma.Error401Unauthorized("invalid credentials")
	case errors.Is(err, store.ErrInvalidCursor):
		return Validation("after", err.Error())
	case errors.Is(err, pagination.ErrMixedCursors):
		return Validation("before", err.Error())
	case errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrTokenExpired),
		errors.Is(err, token.ErrRevoked):
		return huma.Error401Unauthorized(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
