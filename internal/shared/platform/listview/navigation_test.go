package listview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoToPage_Clamping(t *testing.T) {
	state := PageState{CurrentPage: 1, PageSize: 10}
	totalPages := TotalPages(23, 10)

	assert.Equal(t, 3, GoToPage(state, 99, totalPages).CurrentPage)
	assert.Equal(t, GoToPage(state, totalPages, totalPages), GoToPage(state, 1000, totalPages))
	assert.Equal(t, GoToPage(state, 1, totalPages), GoToPage(state, 0, totalPages))
	assert.Equal(t, GoToPage(state, 1, totalPages), GoToPage(state, -7, totalPages))
	assert.Equal(t, 2, GoToPage(state, 2, totalPages).CurrentPage)
	assert.Equal(t, 10, GoToPage(state, 2, totalPages).PageSize, "el tamaño de página no cambia")
}

func TestGoToPage_ZeroTotalPagesMeansOnePage(t *testing.T) {
	state := PageState{CurrentPage: 4, PageSize: 10}

	assert.Equal(t, 1, GoToPage(state, 3, 0).CurrentPage)
}

func TestNextPage(t *testing.T) {
	cases := []struct {
		name       string
		current    int
		totalPages int
		want       int
	}{
		{"avanza", 1, 3, 2},
		{"en la última es no-op", 3, 3, 3},
		{"reajusta si la colección encogió", 5, 2, 2},
		{"una sola página", 1, 1, 1},
		{"sin desbordar en MaxInt", math.MaxInt, math.MaxInt, math.MaxInt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := PageState{CurrentPage: tc.current, PageSize: 10}

			got := NextPage(state, tc.totalPages)

			assert.Equal(t, PageState{CurrentPage: tc.want, PageSize: 10}, got)
		})
	}
}

func TestPreviousPage(t *testing.T) {
	first := PageState{CurrentPage: 1, PageSize: 10}

	assert.Equal(t, first, PreviousPage(first), "en la página 1 es no-op")
	assert.Equal(t, 2, PreviousPage(PageState{CurrentPage: 3, PageSize: 10}).CurrentPage)
}

func TestNavigation_RoundTrip(t *testing.T) {
	state, _ := NewPageState(10)
	total := TotalPages(23, 10)

	state = NextPage(state, total)
	state = NextPage(state, total)
	state = NextPage(state, total)
	assert.Equal(t, 3, state.CurrentPage)

	state = PreviousPage(state)
	state = PreviousPage(state)
	state = PreviousPage(state)
	assert.Equal(t, 1, state.CurrentPage)
}
