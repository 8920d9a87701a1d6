package listview

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Direction es la dirección del orden.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection acepta "asc" o "desc" (sin distinguir mayúsculas).
// Cadena vacía equivale a Asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: unknown sort direction %q", ErrInvalidArgument, s)
	}
}

// Key compara dos elementos según una clave de orden: <0, 0 o >0.
type Key[T any] func(a, b T) int

// By construye una clave sobre un valor ordenable: orden lexicográfico para
// strings y numérico para números.
func By[T any, K cmp.Ordered](accessor func(T) K) Key[T] {
	return func(a, b T) int {
		return cmp.Compare(accessor(a), accessor(b))
	}
}

// ByFold ordena strings sin distinguir mayúsculas.
func ByFold[T any](accessor func(T) string) Key[T] {
	return func(a, b T) int {
		return cmp.Compare(strings.ToLower(accessor(a)), strings.ToLower(accessor(b)))
	}
}

// ByTime ordena cronológicamente.
func ByTime[T any](accessor func(T) time.Time) Key[T] {
	return func(a, b T) int {
		return accessor(a).Compare(accessor(b))
	}
}

// Then desempata con una segunda clave.
func (k Key[T]) Then(next Key[T]) Key[T] {
	return func(a, b T) int {
		if c := k(a, b); c != 0 {
			return c
		}
		return next(a, b)
	}
}

// Sort devuelve una copia ordenada de forma estable: los empates conservan el
// orden relativo de entrada en ambas direcciones. Con key nil devuelve una
// copia sin reordenar. Cualquier dirección distinta de Desc se trata como Asc;
// las entradas externas deben pasar antes por ParseDirection.
func Sort[T any](collection []T, key Key[T], dir Direction) []T {
	out := slices.Clone(collection)
	if out == nil {
		out = []T{}
	}
	if key == nil {
		return out
	}
	compare := key
	if dir == Desc {
		compare = func(a, b T) int { return key(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}
