package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	dirAsc  = "asc"
	dirDesc = "desc"
)

// cursor — самоописывающий ключ позиции в ленте: поле сортировки, направление,
// значение поля и id последнего элемента. Клиенту он непрозрачен.
type cursor struct {
	Field string `json:"field"`
	Dir   string `json:"dir"`
	Value string `json:"value"`
	ID    string `json:"id"`
}

func encodeCursor(c cursor) string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string) (cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var c cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if c.Field == "" || c.ID == "" || (c.Dir != dirAsc && c.Dir != dirDesc) {
		return cursor{}, fmt.Errorf("%w: incomplete key", ErrInvalidCursor)
	}
	return c, nil
}

// timeKey — ключ по времени создания, новые первыми
type timeKey struct {
	at time.Time
	id string
}

func (k timeKey) cursor() string {
	return encodeCursor(cursor{
		Field: "createdAt",
		Dir:   dirDesc,
		Value: k.at.UTC().Format(time.RFC3339Nano),
		ID:    k.id,
	})
}

func parseTimeKey(token string) (timeKey, error) {
	c, err := decodeCursor(token)
	if err != nil {
		return timeKey{}, err
	}
	if c.Field != "createdAt" || c.Dir != dirDesc {
		return timeKey{}, fmt.Errorf("%w: unsupported order %s %s", ErrInvalidCursor, c.Field, c.Dir)
	}
	at, err := time.Parse(time.RFC3339Nano, c.Value)
	if err != nil {
		return timeKey{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return timeKey{at: at, id: c.ID}, nil
}

// before — k идет раньше other в порядке выдачи (createdAt desc, id desc)
func (k timeKey) before(other timeKey) bool {
	if !k.at.Equal(other.at) {
		return k.at.After(other.at)
	}
	return k.id > other.id
}
