package fixtures

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID      string    `yaml:"id"`
	Count   int       `yaml:"count"`
	Created time.Time `yaml:"created"`
}

func TestDecodeYAML(t *testing.T) {
	raw := []byte(`
- id: a
  count: 2
  created: 2024-03-01T09:00:00Z
- id: b
  count: 5
  created: 2024-03-02T10:30:00Z
`)

	rows, err := DecodeYAML[row](raw, nil)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[1].ID)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC), rows[1].Created.UTC())
}

func TestDecodeYAML_UnknownFieldFails(t *testing.T) {
	_, err := DecodeYAML[row]([]byte("- id: a\n  colour: red\n"), nil)

	assert.Error(t, err)
}

func TestDecodeYAML_Validation(t *testing.T) {
	bad := errors.New("count must be positive")
	validate := func(r row) error {
		if r.Count <= 0 {
			return bad
		}
		return nil
	}

	_, err := DecodeYAML[row]([]byte("- id: a\n  count: 1\n- id: b\n  count: 0\n"), validate)

	assert.ErrorIs(t, err, bad)
	assert.ErrorContains(t, err, "fixture #1")
}

func TestDecodeYAML_Empty(t *testing.T) {
	rows, err := DecodeYAML[row]([]byte("[]"), nil)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
