package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	"github.com/davicafu/consentlab/internal/consent/infra/outbound/fixtures"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

func newService(t *testing.T) *ApplicationService {
	t.Helper()
	repo, err := fixtures.NewApplicationRepo()
	require.NoError(t, err)
	return NewApplicationService(repo, zap.NewNop())
}

func TestListApplications_ApprovedNewestFirst(t *testing.T) {
	// Arrange
	svc := newService(t)
	q := query.ListQuery{
		Criteria: consentDomain.StatusCriteria{Statuses: []consentDomain.Status{consentDomain.StatusApproved}},
		Sort:     query.Sort{Field: "lodged_at", Desc: true},
		Page:     listview.PageState{CurrentPage: 1, PageSize: 10},
	}

	// Act
	page, err := svc.ListApplications(context.Background(), q)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	for i, a := range page.Items {
		assert.Equal(t, consentDomain.StatusApproved, a.Status)
		if i > 0 {
			assert.False(t, a.LodgedAt.After(page.Items[i-1].LodgedAt))
		}
	}
}

func TestListApplications_SearchAndDepartment(t *testing.T) {
	svc := newService(t)
	page1 := listview.PageState{CurrentPage: 1, PageSize: 10}

	found, err := svc.ListApplications(context.Background(), query.ListQuery{
		Criteria: consentDomain.SearchCriteria("QUEEN"),
		Page:     page1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, found.TotalItems)
	assert.Equal(t, "BC-2024-0105", found.Items[0].Reference)

	// la solicitud es de Engineering: filtrar por Building la excluye
	none, err := svc.ListApplications(context.Background(), query.ListQuery{
		Criteria: sharedDomain.And(consentDomain.SearchCriteria("queen"), consentDomain.DepartmentCriteria{Department: "Building"}),
		Page:     page1,
	})
	require.NoError(t, err)
	assert.Zero(t, none.TotalItems)
	assert.Equal(t, 1, none.TotalPages)
	assert.Empty(t, none.Items)
}

func TestListApplications_PaginationWalk(t *testing.T) {
	svc := newService(t)
	page := listview.PageState{CurrentPage: 1, PageSize: 7}
	seen := 0

	for {
		res, err := svc.ListApplications(context.Background(), query.ListQuery{Sort: query.Sort{Field: "reference"}, Page: page})
		require.NoError(t, err)
		seen += len(res.Items)
		if !res.HasNext() {
			assert.Equal(t, 5, res.CurrentPage)
			break
		}
		page = listview.NextPage(res.State(), res.TotalPages)
	}
	assert.Equal(t, 30, seen)
}

func TestListApplications_UnknownSortField(t *testing.T) {
	svc := newService(t)

	_, err := svc.ListApplications(context.Background(), query.ListQuery{
		Sort: query.Sort{Field: "colour"},
		Page: listview.PageState{CurrentPage: 1, PageSize: 10},
	})

	assert.ErrorIs(t, err, listview.ErrInvalidArgument)
}

func TestGetApplication(t *testing.T) {
	svc := newService(t)

	byID, err := svc.GetApplication(context.Background(), "app-0003")
	require.NoError(t, err)
	byRef, err := svc.GetApplication(context.Background(), "bc-2024-0103")
	require.NoError(t, err)
	assert.Equal(t, byID, byRef)

	_, err = svc.GetApplication(context.Background(), "nope")
	assert.ErrorIs(t, err, consentDomain.ErrApplicationNotFound)
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}

func TestStats_ByStatus(t *testing.T) {
	svc := newService(t)

	counts, err := svc.Stats(context.Background(), nil, "status")

	require.NoError(t, err)
	require.Len(t, counts, 6)
	total := 0
	for _, c := range counts {
		assert.Equal(t, 5, c.Count)
		total += c.Count
	}
	assert.Equal(t, 30, total)
	// empate en recuento: orden alfabético
	assert.Equal(t, "Approved", counts[0].Key)

	_, err = svc.Stats(context.Background(), nil, "colour")
	assert.ErrorIs(t, err, listview.ErrInvalidArgument)
}
