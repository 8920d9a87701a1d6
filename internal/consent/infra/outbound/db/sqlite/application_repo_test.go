package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	"github.com/davicafu/consentlab/internal/consent/infra/outbound/fixtures"
	sharedSQLite "github.com/davicafu/consentlab/internal/shared/infra/db/sqlite"
)

func setupRepo(t *testing.T) *ApplicationRepoSQLite {
	t.Helper()
	db, err := sharedSQLite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewApplicationRepoSQLite(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestApplicationRepo_SeedAndFetch(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	apps, err := fixtures.Applications()
	require.NoError(t, err)

	require.NoError(t, repo.Seed(ctx, apps))
	got, err := repo.FetchAll(ctx)

	require.NoError(t, err)
	require.Len(t, got, len(apps))
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].LodgedAt.Before(got[i-1].LodgedAt))
	}
}

func TestApplicationRepo_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	lodged := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	app := consentDomain.Application{ID: "a1", Reference: "BC-1", Status: consentDomain.StatusLodged, LodgedAt: lodged, LastModified: lodged}

	require.NoError(t, repo.Seed(ctx, []consentDomain.Application{app}))
	app.Status = consentDomain.StatusApproved
	require.NoError(t, repo.Seed(ctx, []consentDomain.Application{app}))

	got, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, consentDomain.StatusApproved, got[0].Status)
	assert.True(t, got[0].LodgedAt.Equal(lodged))
}

func TestApplicationRepo_SeedRejectsInvalid(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Seed(context.Background(), []consentDomain.Application{{ID: "x", Reference: "BC-9", Status: "Lost"}})

	assert.ErrorIs(t, err, consentDomain.ErrInvalidApplication)
	got, _ := repo.FetchAll(context.Background())
	assert.Empty(t, got)
}

func TestApplicationRepo_EmptyTable(t *testing.T) {
	got, err := setupRepo(t).FetchAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
}
