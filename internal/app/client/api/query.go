package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"pressroom/internal/domain/pagination"
)

// query собирает параметры запроса из фильтров.
// Пустые, нулевые и ложные значения в строку запроса не попадают.
type query struct {
	v url.Values
}

func newQuery() *query {
	return &query{v: url.Values{}}
}

func (q *query) str(key, val string) *query {
	if val = strings.TrimSpace(val); val != "" {
		q.v.Set(key, val)
	}
	return q
}

func (q *query) integer(key string, n int) *query {
	if n != 0 {
		q.v.Set(key, strconv.Itoa(n))
	}
	return q
}

func (q *query) flag(key string, b bool) *query {
	if b {
		q.v.Set(key, "true")
	}
	return q
}

// optFlag — для фильтров, где false тоже имеет смысл
func (q *query) optFlag(key string, b *bool) *query {
	if b != nil {
		q.v.Set(key, strconv.FormatBool(*b))
	}
	return q
}

// list склеивает значения через запятую в один ключ
func (q *query) list(key string, vals []string) *query {
	clean := make([]string, 0, len(vals))
	for _, s := range vals {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	if len(clean) > 0 {
		q.v.Set(key, strings.Join(clean, ","))
	}
	return q
}

func (q *query) time(key string, t *time.Time) *query {
	if t != nil && !t.IsZero() {
		q.v.Set(key, t.UTC().Format(time.RFC3339))
	}
	return q
}

func (q *query) page(p pagination.OffsetRequest) *query {
	q.v.Set("page", strconv.Itoa(p.Page))
	q.v.Set("limit", strconv.Itoa(p.Limit))
	return q
}

func (q *query) cursor(c pagination.CursorRequest) *query {
	q.v.Set("limit", strconv.Itoa(c.Limit))
	// курсоры передаются как получены, без trim и разбора
	if c.After != "" {
		q.v.Set("after", c.After)
	}
	if c.Before != "" {
		q.v.Set("before", c.Before)
	}
	return q
}

func (q *query) values() url.Values {
	return q.v
}
