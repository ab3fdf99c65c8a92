package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownNamesNeverFallBack(t *testing.T) {
	known := []Name{Sift, Window, Interleave, Quant, DFS, Mincut, Lifetime, Cofactor, Hybrid, RCMName}
	for _, n := range known {
		resolved, fellBack := Resolve(n, HybridFamily)
		assert.Equal(t, n, resolved)
		assert.False(t, fellBack)

		resolved, fellBack = Resolve(n, SingleOutputFamily)
		assert.Equal(t, n, resolved)
		assert.False(t, fellBack)
	}
}

func TestResolveUnknownNameFallsBackPerFamily(t *testing.T) {
	resolved, fellBack := Resolve(Name("bogus"), HybridFamily)
	assert.Equal(t, Sift, resolved)
	assert.True(t, fellBack)

	resolved, fellBack = Resolve(Name("bogus"), SingleOutputFamily)
	assert.Equal(t, Mincut, resolved)
	assert.True(t, fellBack)
}

func TestValidateRejectsWrongLengthAndDuplicates(t *testing.T) {
	assert.True(t, Validate(Permutation{0, 1, 2}, 3))
	assert.False(t, Validate(Permutation{0, 1}, 3))
	assert.False(t, Validate(Permutation{0, 0, 2}, 3))
	assert.False(t, Validate(Permutation{0, 1, 3}, 3))
	assert.True(t, Validate(Permutation{}, 0))
}

func TestOrDefaultKeepsValidPermutation(t *testing.T) {
	assert.Equal(t, Permutation{2, 0, 1}, OrDefault(Permutation{2, 0, 1}, 3))
}

func TestOrDefaultFallsBackToIdentityOnSizeMismatch(t *testing.T) {
	assert.Equal(t, Permutation{0, 1, 2}, OrDefault(Permutation{0, 1}, 3))
}
