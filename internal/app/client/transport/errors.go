package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// NetworkErrorMessage — Data нормализованной ошибки, когда ответа не было вовсе
const NetworkErrorMessage = "Network Error"

var (
	// ErrStaleSession — ресурс собран до последней смены токена и должен быть перечитан из фасада
	ErrStaleSession = errors.New("resource api bound to a stale session")
	// ErrUnsuccessful — конверт {success:false}
	ErrUnsuccessful = errors.New("request was not successful")
)

// Error — нормализованная ошибка запроса {status, data}
type Error struct {
	Status int
	Data   any
	Err    error
}

// networkError оборачивает сбой без ответа: status 500, data "Network Error"
func networkError(cause error) *Error {
	return &Error{
		Status: http.StatusInternalServerError,
		Data:   NetworkErrorMessage,
		Err:    cause,
	}
}

// responseError строит ошибку по ответу сервера
func responseError(status int, body []byte) *Error {
	return &Error{Status: status, Data: decodeData(body)}
}

func decodeData(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return string(body)
}

func (e *Error) Error() string {
	if e.IsNetwork() {
		return fmt.Sprintf("%s: %v", NetworkErrorMessage, e.Err)
	}
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetwork — ответа от сервера не было
func (e *Error) IsNetwork() bool {
	return e.Err != nil && e.Data == NetworkErrorMessage
}

// Message достает человекочитаемое сообщение из тела ответа
func (e *Error) Message() string {
	switch d := e.Data.(type) {
	case string:
		return d
	case map[string]any:
		for _, key := range []string{"message", "error", "detail", "title"} {
			if s, ok := d[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Field возвращает произвольное поле JSON-тела ошибки
func (e *Error) Field(key string) (any, bool) {
	m, ok := e.Data.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// StatusOf возвращает HTTP-статус нормализованной ошибки или 0
func StatusOf(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}

// IsStatus проверяет статус нормализованной ошибки
func IsStatus(err error, status int) bool {
	var te *Error
	if !errors.As(err, &te) {
		return false
	}
	return !te.IsNetwork() && te.Status == status
}

// EnvelopeError — сервер вернул {success:false, message}
type EnvelopeError struct {
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return ErrUnsuccessful.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnsuccessful, e.Message)
}

func (e *EnvelopeError) Unwrap() error {
	return ErrUnsuccessful
}
