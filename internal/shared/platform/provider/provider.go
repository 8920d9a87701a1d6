// Package provider define de dónde salen las colecciones que pintan las vistas.
// Las vistas dependen solo de Provider; hoy puede ser un dataset de fixtures,
// mañana una base de datos.
package provider

import (
	"context"
	"slices"
)

// Provider entrega la colección completa de un dataset.
type Provider[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
}

// Func adapta una función a Provider.
type Func[T any] func(ctx context.Context) ([]T, error)

func (f Func[T]) FetchAll(ctx context.Context) ([]T, error) { return f(ctx) }

// Static sirve un slice fijo. Cada llamada devuelve una copia, así que los
// llamadores no pueden alterar el dataset.
type Static[T any] struct {
	items []T
}

// NewStatic copia items.
func NewStatic[T any](items []T) *Static[T] {
	return &Static[T]{items: slices.Clone(items)}
}

func (s *Static[T]) FetchAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := slices.Clone(s.items)
	if out == nil {
		out = []T{}
	}
	return out, nil
}
