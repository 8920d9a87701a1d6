package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/mocks"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

type consent struct {
	Ref    string
	Status string
	Dept   string
}

func resolveConsent(c consent, field string) (interface{}, bool) {
	switch field {
	case "reference":
		return c.Ref, true
	case "status":
		return c.Status, true
	case "department":
		return c.Dept, true
	}
	return nil, false
}

var consentSorts = query.SortRegistry[consent]{
	"reference": listview.By(func(c consent) string { return c.Ref }),
	"status":    listview.By(func(c consent) string { return c.Status }),
}

func fixtures(n int) []consent {
	out := make([]consent, n)
	statuses := []string{"Approved", "Pending", "Declined"}
	for i := range out {
		out[i] = consent{
			Ref:    fmt.Sprintf("DA-%03d", i+1),
			Status: statuses[i%3],
			Dept:   []string{"Planning", "Building"}[i%2],
		}
	}
	return out
}

func newService(items []consent) *Service[consent] {
	return NewService[consent](provider.NewStatic(items), resolveConsent, consentSorts, zap.NewNop())
}

func TestList_FilterSortPaginate(t *testing.T) {
	// Arrange
	svc := newService(fixtures(23))
	q := query.ListQuery{
		Criteria: sharedDomain.Where("status", sharedDomain.OpEq, "Approved"),
		Sort:     query.Sort{Field: "reference", Desc: true},
		Page:     listview.PageState{CurrentPage: 1, PageSize: 5},
	}

	// Act
	page, err := svc.List(context.Background(), q)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "DA-022", page.Items[0].Ref)
	for _, c := range page.Items {
		assert.Equal(t, "Approved", c.Status)
	}
}

func TestList_ClampsPastLastPage(t *testing.T) {
	svc := newService(fixtures(23))

	page, err := svc.List(context.Background(), query.ListQuery{Page: listview.PageState{CurrentPage: 7, PageSize: 10}})

	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Len(t, page.Items, 3)
}

func TestList_ContractErrorsSkipProvider(t *testing.T) {
	inner := new(mocks.MockProvider[consent])
	svc := NewService[consent](inner, resolveConsent, consentSorts, zap.NewNop())

	_, err := svc.List(context.Background(), query.ListQuery{Page: listview.PageState{CurrentPage: 1, PageSize: 0}})
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)

	_, err = svc.List(context.Background(), query.ListQuery{
		Sort: query.Sort{Field: "nope"},
		Page: listview.PageState{CurrentPage: 1, PageSize: 10},
	})
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)

	inner.AssertNotCalled(t, "FetchAll", mock.Anything)
}

func TestList_ProviderError(t *testing.T) {
	down := errors.New("db down")
	inner := new(mocks.MockProvider[consent])
	inner.On("FetchAll", mock.Anything).Return(nil, down)
	svc := NewService[consent](inner, resolveConsent, consentSorts, zap.NewNop())

	_, err := svc.List(context.Background(), query.ListQuery{Page: listview.PageState{CurrentPage: 1, PageSize: 10}})

	assert.ErrorIs(t, err, down)
}

func TestFirst(t *testing.T) {
	svc := newService(fixtures(5))

	c, ok, err := svc.First(context.Background(), sharedDomain.Where("reference", sharedDomain.OpEq, "DA-004"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Approved", c.Status)

	_, ok, err = svc.First(context.Background(), sharedDomain.Where("reference", sharedDomain.OpEq, "DA-999"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCountBy(t *testing.T) {
	svc := newService(fixtures(6))

	counts, err := svc.CountBy(context.Background(), nil, "Status")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Approved": 2, "Pending": 2, "Declined": 2}, counts)

	counts, err = svc.CountBy(context.Background(), sharedDomain.Where("department", sharedDomain.OpEq, "Planning"), "status")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Approved": 1, "Pending": 1, "Declined": 1}, counts)

	_, err = svc.CountBy(context.Background(), nil, "colour")
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)
}

func TestSortFields(t *testing.T) {
	assert.Equal(t, []string{"reference", "status"}, newService(nil).SortFields())
}
