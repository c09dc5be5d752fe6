package transport

import (
	"encoding/json"
	"fmt"

	"pressroom/internal/domain/pagination"
)

// Decoder разворачивает тело ответа конкретного эндпоинта в out.
// Форма ответа объявляется при описании эндпоинта, а не угадывается.
type Decoder func(body []byte, out any) error

// Raw — тело ответа и есть payload
func Raw(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// envelope — {success, data, message}
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Envelope разворачивает {success, data, message} и отдает data
func Envelope(body []byte, out any) error {
	if len(body) == 0 {
		return &EnvelopeError{Message: "empty response"}
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if !env.Success {
		return &EnvelopeError{Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

// Имя поля с метаданными у разных семейств эндпоинтов отличается
const (
	MetaKey     = "meta"
	MetadataKey = "metadata"
)

// DecodeOffset разбирает {items, <metaKey>: {...}}
func DecodeOffset[T any](body []byte, metaKey string) (*pagination.OffsetPage[T], error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}

	page := &pagination.OffsetPage[T]{Items: []T{}}
	if items, ok := raw["items"]; ok && string(items) != "null" {
		if err := json.Unmarshal(items, &page.Items); err != nil {
			return nil, fmt.Errorf("decode collection items: %w", err)
		}
	}

	meta, ok := raw[metaKey]
	if !ok {
		return nil, fmt.Errorf("decode collection: missing %q", metaKey)
	}
	if err := json.Unmarshal(meta, &page.Meta); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", metaKey, err)
	}

	return page, nil
}

// DecodeCursor разбирает {items, metadata: {hasMore, nextCursor, prevCursor}}
func DecodeCursor[T any](body []byte) (*pagination.CursorPage[T], error) {
	var page pagination.CursorPage[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode cursor page: %w", err)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}
