package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
)

func TestReferral_Overdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, Referral{Status: StatusRequested, DueDate: past}.Overdue(now))
	assert.True(t, Referral{Status: StatusInProgress, DueDate: past}.Overdue(now))
	assert.False(t, Referral{Status: StatusResponded, DueDate: past}.Overdue(now))
	assert.False(t, Referral{Status: StatusRequested, DueDate: future}.Overdue(now))
}

func TestOverdueCriteria_UsesClock(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	resolve := NewFieldResolver(func() time.Time { return now })
	overdue := sharedDomain.Predicate(OverdueCriteria{Overdue: true}, resolve)

	assert.True(t, overdue(Referral{Status: StatusRequested, DueDate: now.AddDate(0, 0, -1)}))
	assert.False(t, overdue(Referral{Status: StatusClosed, DueDate: now.AddDate(0, 0, -1)}))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("in-progress")
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Referral{ID: "r1", ApplicationRef: "BC-1", Status: StatusClosed}.Validate())
	assert.ErrorIs(t, Referral{ID: "r1", Status: StatusClosed}.Validate(), ErrInvalidReferral)
	assert.ErrorIs(t, Referral{ID: "r1", ApplicationRef: "BC-1", Status: "Lost"}.Validate(), ErrInvalidReferral)
}
