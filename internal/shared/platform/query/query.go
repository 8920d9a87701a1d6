package query

import (
	"fmt"
	"sort"
	"strings"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

// ---------- Tipos de filtrado / paginación / ordenamiento ----------

// OffsetPagination para paginación clásica (limit/offset). Se conserva para
// clientes antiguos; internamente todo se convierte a listview.PageState.
type OffsetPagination struct {
	Limit  int
	Offset int
}

// PageState convierte limit/offset a página. Un offset que no cae en un
// inicio de página se redondea hacia abajo.
func (p OffsetPagination) PageState() (listview.PageState, error) {
	if p.Limit <= 0 {
		return listview.PageState{}, fmt.Errorf("%w: limit must be positive, got %d", listview.ErrInvalidArgument, p.Limit)
	}
	if p.Offset < 0 {
		return listview.PageState{}, fmt.Errorf("%w: offset must be >= 0, got %d", listview.ErrInvalidArgument, p.Offset)
	}
	return listview.PageState{CurrentPage: p.Offset/p.Limit + 1, PageSize: p.Limit}, nil
}

// Sort indica campo y dirección.
type Sort struct {
	Field string // ej. "lodged_at", "reference", "status"
	Desc  bool
}

// Direction traduce Desc a listview.Direction.
func (s Sort) Direction() listview.Direction {
	if s.Desc {
		return listview.Desc
	}
	return listview.Asc
}

// ListQuery es la petición completa de una vista de listado.
type ListQuery struct {
	Criteria sharedDomain.Criteria
	Sort     Sort
	Page     listview.PageState
}

// SortRegistry asocia los nombres públicos de columna con su clave de orden.
type SortRegistry[T any] map[string]listview.Key[T]

// Resolve devuelve la clave para s.Field. Campo vacío = sin orden (se
// conserva el orden del proveedor); campo desconocido = ErrInvalidArgument.
func (r SortRegistry[T]) Resolve(s Sort) (listview.Key[T], error) {
	field := strings.ToLower(strings.TrimSpace(s.Field))
	if field == "" {
		return nil, nil
	}
	key, ok := r[field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort field %q (allowed: %s)",
			listview.ErrInvalidArgument, s.Field, strings.Join(r.Fields(), ", "))
	}
	return key, nil
}

// Fields lista los campos ordenables, alfabéticamente.
func (r SortRegistry[T]) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
