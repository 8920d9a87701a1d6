package fixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
)

func TestApplications_EmbeddedDatasetIsValid(t *testing.T) {
	apps, err := Applications()

	require.NoError(t, err)
	assert.Len(t, apps, 30)

	seen := make(map[string]bool)
	for _, a := range apps {
		assert.False(t, seen[a.ID], "id duplicado %s", a.ID)
		seen[a.ID] = true
		assert.False(t, a.LodgedAt.IsZero())
		assert.False(t, a.LastModified.Before(a.LodgedAt), a.Reference)
	}
}

func TestNewApplicationRepo(t *testing.T) {
	repo, err := NewApplicationRepo()
	require.NoError(t, err)

	apps, err := repo.FetchAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "BC-2024-0101", apps[0].Reference)
	assert.Equal(t, consentDomain.StatusPending, apps[0].Status)
}
