package listview

import "fmt"

// PageState es la página que el usuario está viendo.
type PageState struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// NewPageState crea el estado inicial (página 1).
func NewPageState(pageSize int) (PageState, error) {
	p := PageState{CurrentPage: 1, PageSize: pageSize}
	if err := p.Validate(); err != nil {
		return PageState{}, err
	}
	return p, nil
}

// Validate comprueba el contrato del estado.
func (p PageState) Validate() error {
	if p.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidArgument, p.PageSize)
	}
	if p.CurrentPage < 1 {
		return fmt.Errorf("%w: current page must be >= 1, got %d", ErrInvalidArgument, p.CurrentPage)
	}
	return nil
}

// Offset es el índice del primer elemento de la página.
func (p PageState) Offset() int {
	return (p.CurrentPage - 1) * p.PageSize
}

// PageResult es la porción visible de la colección más sus metadatos.
type PageResult[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// State devuelve el estado ya reajustado, para devolverlo al llamador.
func (r PageResult[T]) State() PageState {
	return PageState{CurrentPage: r.CurrentPage, PageSize: r.PageSize}
}

func (r PageResult[T]) HasNext() bool     { return r.CurrentPage < r.TotalPages }
func (r PageResult[T]) HasPrevious() bool { return r.CurrentPage > 1 }

// TotalPages = max(1, ceil(totalItems / pageSize)).
// pageSize debe ser positivo.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (totalItems + pageSize - 1) / pageSize
	return max(1, pages)
}

// Paginate recorta la colección a la página pedida. Si la página apunta más
// allá de la última se ajusta a la última; una colección vacía produce la
// página 1 de 1 sin elementos.
func Paginate[T any](collection []T, page PageState) (PageResult[T], error) {
	if err := page.Validate(); err != nil {
		return PageResult[T]{}, err
	}

	total := len(collection)
	totalPages := TotalPages(total, page.PageSize)
	current := clamp(page.CurrentPage, 1, totalPages)

	start := min((current-1)*page.PageSize, total)
	end := min(start+page.PageSize, total)

	items := make([]T, end-start)
	copy(items, collection[start:end])

	return PageResult[T]{
		Items:       items,
		CurrentPage: current,
		PageSize:    page.PageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
