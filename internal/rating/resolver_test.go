package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExactAfterSuffixStripping(t *testing.T) {
	resolver := NewSimilarityResolver(0.82)
	known := []string{"Real Madrid", "Real Sociedad", "Real Betis"}

	name, ok := resolver.Resolve("Real Madrid CF", known)
	require.True(t, ok)
	assert.Equal(t, "Real Madrid", name)
}

func TestResolveMinorSpellingDifference(t *testing.T) {
	resolver := NewSimilarityResolver(0.82)
	known := []string{"Athletic Club", "Atletico Madrid", "Osasuna"}

	name, ok := resolver.Resolve("Atlético Madrid", known)
	require.True(t, ok)
	assert.Equal(t, "Atletico Madrid", name)
}

func TestResolveRejectsBelowThreshold(t *testing.T) {
	resolver := NewSimilarityResolver(0.82)
	known := []string{"Liverpool", "Everton"}

	_, ok := resolver.Resolve("Bayern Munchen", known)
	assert.False(t, ok)
}

func TestResolveEmptyInputs(t *testing.T) {
	resolver := NewSimilarityResolver(0.82)

	_, ok := resolver.Resolve("", []string{"Arsenal"})
	assert.False(t, ok)

	_, ok = resolver.Resolve("Arsenal", nil)
	assert.False(t, ok)
}

func TestResolveTieBreaksOnFirstCandidate(t *testing.T) {
	resolver := NewSimilarityResolver(0.50)

	// Both candidates are equally distant; the first one wins.
	name, ok := resolver.Resolve("Uniten", []string{"United", "Unitez"})
	require.True(t, ok)
	assert.Equal(t, "United", name)
}
