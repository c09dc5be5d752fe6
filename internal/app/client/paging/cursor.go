package paging

import (
	"context"
	"sync"

	"pressroom/internal/domain/pagination"
)

// CursorFetcher запрашивает одну курсорную страницу
type CursorFetcher[T any] func(ctx context.Context, req pagination.CursorRequest) (*pagination.CursorPage[T], error)

// CursorLoader — лента по курсорам. Курсор сервера передается в следующий
// запрос как есть и никогда не разбирается.
type CursorLoader[T any] struct {
	fetch CursorFetcher[T]
	limit int

	mu      sync.Mutex
	items   []T
	next    string
	hasMore bool
	loaded  bool
	loading bool
	epoch   uint64
	err     error
}

func NewCursorLoader[T any](fetch CursorFetcher[T], limit int) *CursorLoader[T] {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	return &CursorLoader[T]{fetch: fetch, limit: limit, items: []T{}}
}

func (l *CursorLoader[T]) Style() pagination.Style { return pagination.StyleCursor }

// Reload очищает курсор и грузит ленту с начала
func (l *CursorLoader[T]) Reload(ctx context.Context) error {
	l.mu.Lock()
	l.epoch++
	l.loading = true
	epoch := l.epoch
	l.mu.Unlock()

	return l.load(ctx, epoch, pagination.CursorRequest{Limit: l.limit}, true)
}

func (l *CursorLoader[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil
	}
	if !l.loaded {
		l.mu.Unlock()
		return l.Reload(ctx)
	}
	if !l.hasMore {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	epoch := l.epoch
	req := pagination.CursorRequest{Limit: l.limit, After: l.next}
	l.mu.Unlock()

	return l.load(ctx, epoch, req, false)
}

func (l *CursorLoader[T]) load(ctx context.Context, epoch uint64, req pagination.CursorRequest, reset bool) error {
	res, err := l.fetch(ctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()

	if epoch != l.epoch {
		return err
	}
	l.loading = false
	l.err = err
	if err != nil {
		return err
	}

	if reset {
		l.items = clone(res.Items)
	} else {
		l.items = append(l.items, res.Items...)
	}
	l.next = res.Metadata.NextCursor
	l.hasMore = res.Metadata.HasMore && res.Metadata.NextCursor != ""
	l.loaded = true
	return nil
}

func (l *CursorLoader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clone(l.items)
}

func (l *CursorLoader[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.loaded || l.hasMore
}

func (l *CursorLoader[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *CursorLoader[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// NextCursor — курсор, который уйдет в следующий LoadMore
func (l *CursorLoader[T]) NextCursor() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next
}

// Update меняет загруженные элементы на месте; нужен оптимистичным мутациям
func (l *CursorLoader[T]) Update(fn func(items []T) []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = fn(l.items)
}
