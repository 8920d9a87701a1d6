package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocuments_EmbeddedDatasetIsValid(t *testing.T) {
	docs, err := Documents()

	require.NoError(t, err)
	assert.Len(t, docs, 27)
	for _, d := range docs {
		assert.NotEmpty(t, d.Extension(), d.Name)
		assert.Positive(t, d.SizeBytes)
	}
}
