package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	g := NewRandomGenerator(0)
	a, err := g.NewID()
	require.NoError(t, err)
	b, err := g.NewID()
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Len(t, mustID(t, NewRandomGenerator(4)), 8)
}

func mustID(t *testing.T, g Generator) string {
	t.Helper()
	v, err := g.NewID()
	require.NoError(t, err)
	return v
}
