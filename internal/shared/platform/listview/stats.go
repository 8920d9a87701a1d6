package listview

import (
	"cmp"
	"slices"
)

// Count es el número de elementos de un grupo.
type Count[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// CountBy cuenta los elementos por clave en una sola pasada.
func CountBy[T any, K comparable](collection []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, item := range collection {
		counts[key(item)]++
	}
	return counts
}

// GroupBy agrupa conservando el orden de entrada dentro de cada grupo.
func GroupBy[T any, K comparable](collection []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range collection {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// SortedCounts devuelve los conteos de mayor a menor; a igual conteo, por clave.
func SortedCounts[K cmp.Ordered](counts map[K]int) []Count[K] {
	out := make([]Count[K], 0, len(counts))
	for k, n := range counts {
		out = append(out, Count[K]{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b Count[K]) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
