package listview

// Las transiciones de página son funciones totales: nunca fallan y siempre
// devuelven un estado dentro de [1, max(1, totalPages)]. totalPages lo aporta
// el llamador, recalculado sobre la última colección filtrada.

// GoToPage salta a target ajustándolo al rango válido.
func GoToPage(page PageState, target, totalPages int) PageState {
	page.CurrentPage = clamp(target, 1, max(1, totalPages))
	return page
}

// NextPage avanza una página; en la última no hace nada.
func NextPage(page PageState, totalPages int) PageState {
	if page.CurrentPage >= totalPages {
		return GoToPage(page, page.CurrentPage, totalPages)
	}
	return GoToPage(page, page.CurrentPage+1, totalPages)
}

// PreviousPage retrocede una página; en la primera no hace nada.
func PreviousPage(page PageState) PageState {
	page.CurrentPage = max(1, page.CurrentPage-1)
	return page
}
