package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	referralDomain "github.com/davicafu/consentlab/internal/referral/domain"
	"github.com/davicafu/consentlab/internal/referral/infra/outbound/fixtures"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
)

var clock = time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

func newService(t *testing.T) *ReferralService {
	t.Helper()
	repo, err := fixtures.NewReferralRepo()
	require.NoError(t, err)
	return NewReferralService(repo, func() time.Time { return clock }, zap.NewNop())
}

func TestListReferrals_OverdueByDueDate(t *testing.T) {
	// Arrange
	svc := newService(t)
	q := query.ListQuery{
		Criteria: referralDomain.OverdueCriteria{Overdue: true},
		Sort:     query.Sort{Field: "due_date"},
		Page:     listview.PageState{CurrentPage: 1, PageSize: 50},
	}

	// Act
	page, err := svc.ListReferrals(context.Background(), q)

	// Assert
	require.NoError(t, err)
	require.NotZero(t, page.TotalItems)
	for i, r := range page.Items {
		assert.True(t, r.Overdue(clock), r.ID)
		if i > 0 {
			assert.False(t, r.DueDate.Before(page.Items[i-1].DueDate))
		}
	}
}

func TestListReferrals_DepartmentAndStatus(t *testing.T) {
	svc := newService(t)
	q := query.ListQuery{
		Criteria: sharedDomain.And(
			referralDomain.DepartmentCriteria{Department: "Stormwater"},
			referralDomain.StatusCriteria{Status: referralDomain.StatusClosed},
		),
		Page: listview.PageState{CurrentPage: 1, PageSize: 10},
	}

	page, err := svc.ListReferrals(context.Background(), q)

	require.NoError(t, err)
	for _, r := range page.Items {
		assert.Equal(t, "Stormwater", r.Department)
		assert.Equal(t, referralDomain.StatusClosed, r.Status)
	}
}

func TestStats_ByStatusAndOverdue(t *testing.T) {
	svc := newService(t)

	byStatus, err := svc.Stats(context.Background(), nil, "status")
	require.NoError(t, err)
	require.Len(t, byStatus, 4)
	for _, c := range byStatus {
		assert.Equal(t, 6, c.Count)
	}

	byOverdue, err := svc.Stats(context.Background(), nil, "overdue")
	require.NoError(t, err)
	total := 0
	for _, c := range byOverdue {
		assert.Contains(t, []string{"true", "false"}, c.Key)
		total += c.Count
	}
	assert.Equal(t, 24, total)
}
