// Package listview contiene la lógica pura de las vistas de listado del portal:
// filtrar, ordenar y paginar una colección en memoria, más la navegación
// entre páginas.
//
// Ninguna función de este paquete hace I/O ni muta la colección de entrada.
// Los errores son siempre de contrato (ErrInvalidArgument) y deben tratarse
// como fallos del llamador.
package listview

import "errors"

// ErrInvalidArgument indica que el llamador configuró mal la vista
// (tamaño de página <= 0, página actual < 1, dirección desconocida...).
var ErrInvalidArgument = errors.New("invalid argument")

// Predicate es una condición pura sobre un elemento.
type Predicate[T any] func(item T) bool

// Filter devuelve, en el orden original, los elementos que cumplen todos los
// predicados. Sin predicados devuelve una copia de la colección.
// Los predicados nil se ignoran.
func Filter[T any](collection []T, predicates ...Predicate[T]) []T {
	out := make([]T, 0, len(collection))
	for _, item := range collection {
		if matchesAll(item, predicates) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, predicates []Predicate[T]) bool {
	for _, p := range predicates {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// Not niega un predicado.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(item T) bool { return !p(item) }
}

// AnyOf se cumple si al menos uno de los predicados se cumple.
// Sin predicados siempre se cumple (no filtra nada).
func AnyOf[T any](predicates ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		active := 0
		for _, p := range predicates {
			if p == nil {
				continue
			}
			active++
			if p(item) {
				return true
			}
		}
		return active == 0
	}
}

// View agrupa los parámetros de una vista: filtros, orden y página.
type View[T any] struct {
	Predicates []Predicate[T]
	Key        Key[T]
	Direction  Direction
	Page       PageState
}

// Apply ejecuta filtro -> orden -> paginación sobre la colección.
func (v View[T]) Apply(collection []T) (PageResult[T], error) {
	if err := v.Page.Validate(); err != nil {
		return PageResult[T]{}, err
	}
	filtered := Filter(collection, v.Predicates...)
	sorted := Sort(filtered, v.Key, v.Direction)
	return Paginate(sorted, v.Page)
}
