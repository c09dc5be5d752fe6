// Package pagination описывает два независимых контракта постраничной выдачи:
// offset (page/limit) и курсорный (after/before). В одном эндпоинте стили не смешиваются.
package pagination

import (
	"errors"
	"fmt"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	ErrInvalidPage   = errors.New("page must be >= 1")
	ErrInvalidLimit  = errors.New("limit must be > 0")
	ErrMixedCursors  = errors.New("after and before are mutually exclusive")
	ErrLimitTooLarge = fmt.Errorf("limit must be <= %d", MaxLimit)
)

// Style — дискриминатор контракта пагинации
type Style string

const (
	StyleOffset Style = "offset"
	StyleCursor Style = "cursor"
)

// Request — общий тип запроса страницы; реализуется OffsetRequest и CursorRequest
type Request interface {
	Style() Style
	Validate() error
}

// OffsetRequest — запрос страницы по номеру
type OffsetRequest struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gt=0,lte=100"`
}

func (OffsetRequest) Style() Style { return StyleOffset }

func (r OffsetRequest) Validate() error {
	if r.Page < 1 {
		return ErrInvalidPage
	}
	if r.Limit <= 0 {
		return ErrInvalidLimit
	}
	if r.Limit > MaxLimit {
		return ErrLimitTooLarge
	}
	return nil
}

// Next возвращает запрос следующей страницы с тем же limit
func (r OffsetRequest) Next() OffsetRequest {
	return OffsetRequest{Page: r.Page + 1, Limit: r.Limit}
}

// FirstPage — запрос первой страницы
func FirstPage(limit int) OffsetRequest {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return OffsetRequest{Page: 1, Limit: limit}
}

// CursorRequest — запрос страницы по курсору. Курсор непрозрачен для клиента.
type CursorRequest struct {
	Limit  int    `json:"limit" validate:"gt=0,lte=100"`
	After  string `json:"after,omitempty" validate:"excluded_with=Before"`
	Before string `json:"before,omitempty"`
}

func (CursorRequest) Style() Style { return StyleCursor }

func (r CursorRequest) Validate() error {
	if r.Limit <= 0 {
		return ErrInvalidLimit
	}
	if r.Limit > MaxLimit {
		return ErrLimitTooLarge
	}
	if r.After != "" && r.Before != "" {
		return ErrMixedCursors
	}
	return nil
}

// OffsetMeta — метаданные offset-страницы
type OffsetMeta struct {
	Total       int  `json:"total"`
	PageCount   int  `json:"pageCount"`
	CurrentPage int  `json:"currentPage"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
	Limit       int  `json:"limit"`
}

// NewOffsetMeta считает метаданные: pageCount = ceil(total/limit)
func NewOffsetMeta(total, page, limit int) OffsetMeta {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}
	pageCount := (total + limit - 1) / limit
	return OffsetMeta{
		Total:       total,
		PageCount:   pageCount,
		CurrentPage: page,
		HasPrev:     page > 1,
		HasNext:     page < pageCount,
		Limit:       limit,
	}
}

// Window возвращает границы среза [start, end) для страницы
func Window(total, page, limit int) (int, int) {
	if limit <= 0 || page < 1 || total <= 0 {
		return 0, 0
	}
	start := (page - 1) * limit
	if start >= total {
		return total, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}

// OffsetPage — коллекция с offset-метаданными
type OffsetPage[T any] struct {
	Items []T
	Meta  OffsetMeta
}

// CursorMeta — метаданные курсорной страницы
type CursorMeta struct {
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
	PrevCursor string `json:"prevCursor,omitempty"`
}

// CursorPage — коллекция с курсорными метаданными
type CursorPage[T any] struct {
	Items    []T        `json:"items"`
	Metadata CursorMeta `json:"metadata"`
}
