package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

type row struct {
	Ref string
	Fee int
}

func TestOffsetPagination_PageState(t *testing.T) {
	cases := []struct {
		in   OffsetPagination
		want listview.PageState
	}{
		{OffsetPagination{Limit: 10, Offset: 0}, listview.PageState{CurrentPage: 1, PageSize: 10}},
		{OffsetPagination{Limit: 10, Offset: 20}, listview.PageState{CurrentPage: 3, PageSize: 10}},
		{OffsetPagination{Limit: 10, Offset: 25}, listview.PageState{CurrentPage: 3, PageSize: 10}},
	}
	for _, tc := range cases {
		got, err := tc.in.PageState()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := OffsetPagination{Limit: 0}.PageState()
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)
	_, err = OffsetPagination{Limit: 5, Offset: -1}.PageState()
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)
}

func TestSortRegistry_Resolve(t *testing.T) {
	registry := SortRegistry[row]{
		"reference": listview.By(func(r row) string { return r.Ref }),
		"fee":       listview.By(func(r row) int { return r.Fee }),
	}

	key, err := registry.Resolve(Sort{Field: " Fee "})
	require.NoError(t, err)
	sorted := listview.Sort([]row{{"b", 2}, {"a", 1}}, key, Sort{Desc: true}.Direction())
	assert.Equal(t, "b", sorted[0].Ref)

	none, err := registry.Resolve(Sort{})
	assert.NoError(t, err)
	assert.Nil(t, none)

	_, err = registry.Resolve(Sort{Field: "colour"})
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "fee, reference")
}
