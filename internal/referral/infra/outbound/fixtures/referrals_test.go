package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferrals_EmbeddedDatasetIsValid(t *testing.T) {
	refs, err := Referrals()

	require.NoError(t, err)
	assert.Len(t, refs, 24)
	for _, r := range refs {
		assert.False(t, r.DueDate.IsZero(), r.ID)
		assert.NotEmpty(t, r.AssignedTo, r.ID)
	}
}
