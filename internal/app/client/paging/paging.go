// Package paging — состояние "загрузить еще" поверх двух контрактов пагинации.
//
// Оба загрузчика потокобезопасны. LoadMore ничего не делает, пока идет загрузка
// или когда больше нечего грузить; обе проверки читают текущее состояние под мьютексом.
// Неудачная загрузка оставляет страницу, элементы и метаданные без изменений.
// Reload отменяет результат загрузки, начатой до него.
package paging

import (
	"context"

	"pressroom/internal/domain/pagination"
)

// Loader — общий интерфейс offset- и курсорного загрузчика
type Loader[T any] interface {
	Reload(ctx context.Context) error
	LoadMore(ctx context.Context) error
	Items() []T
	HasMore() bool
	Loading() bool
	Err() error
	Style() pagination.Style
}

var (
	_ Loader[struct{}] = (*OffsetLoader[struct{}])(nil)
	_ Loader[struct{}] = (*CursorLoader[struct{}])(nil)
)

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
