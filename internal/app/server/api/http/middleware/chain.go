package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

type Func = func(ctx huma.Context, next func(huma.Context))

// Chain - общий префикс мидлварей, от которого строятся наборы для ручек
type Chain struct {
	base huma.Middlewares
}

func NewChain(base ...Func) *Chain {
	return &Chain{base: append(huma.Middlewares{}, base...)}
}

// With возвращает новый набор: база, затем extra. База не меняется.
func (c *Chain) With(extra ...Func) huma.Middlewares {
	out := make(huma.Middlewares, 0, len(c.base)+len(extra))
	out = append(out, c.base...)
	return append(out, extra...)
}

// Extend возвращает цепочку с расширенной базой
func (c *Chain) Extend(extra ...Func) *Chain {
	return &Chain{base: c.With(extra...)}
}
