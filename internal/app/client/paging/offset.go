package paging

import (
	"context"
	"sync"

	"pressroom/internal/domain/pagination"
)

// OffsetFetcher запрашивает одну offset-страницу
type OffsetFetcher[T any] func(ctx context.Context, req pagination.OffsetRequest) (*pagination.OffsetPage[T], error)

// OffsetLoader — список по номерам страниц: страница 1 заменяет элементы,
// следующие дописываются в конец
type OffsetLoader[T any] struct {
	fetch OffsetFetcher[T]
	limit int

	mu      sync.Mutex
	items   []T
	meta    pagination.OffsetMeta
	page    int
	loaded  bool
	loading bool
	epoch   uint64
	err     error
}

func NewOffsetLoader[T any](fetch OffsetFetcher[T], limit int) *OffsetLoader[T] {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	return &OffsetLoader[T]{fetch: fetch, limit: limit, items: []T{}}
}

func (l *OffsetLoader[T]) Style() pagination.Style { return pagination.StyleOffset }

// Reload загружает первую страницу заново
func (l *OffsetLoader[T]) Reload(ctx context.Context) error {
	l.mu.Lock()
	l.epoch++
	l.loading = true
	epoch := l.epoch
	l.mu.Unlock()

	return l.load(ctx, epoch, 1)
}

// LoadMore загружает следующую страницу
func (l *OffsetLoader[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil
	}
	if !l.loaded {
		l.mu.Unlock()
		return l.Reload(ctx)
	}
	if !l.meta.HasNext {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	epoch := l.epoch
	next := l.page + 1
	l.mu.Unlock()

	return l.load(ctx, epoch, next)
}

func (l *OffsetLoader[T]) load(ctx context.Context, epoch uint64, page int) error {
	res, err := l.fetch(ctx, pagination.OffsetRequest{Page: page, Limit: l.limit})

	l.mu.Lock()
	defer l.mu.Unlock()

	if epoch != l.epoch {
		// результат устарел после Reload
		return err
	}
	l.loading = false
	l.err = err
	if err != nil {
		return err
	}

	if page == 1 {
		l.items = clone(res.Items)
	} else {
		l.items = append(l.items, res.Items...)
	}
	l.page = page
	l.meta = res.Meta
	l.loaded = true
	return nil
}

func (l *OffsetLoader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clone(l.items)
}

// HasMore — до первой загрузки true
func (l *OffsetLoader[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.loaded || l.meta.HasNext
}

func (l *OffsetLoader[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *OffsetLoader[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Page — номер последней загруженной страницы, 0 до первой загрузки
func (l *OffsetLoader[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *OffsetLoader[T]) Meta() pagination.OffsetMeta {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.meta
}
