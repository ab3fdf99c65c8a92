package order

import (
	"testing"

	"aagreorder/internal/feature"
	"github.com/stretchr/testify/assert"
)

func TestQuantOrdersByPriorityDescending(t *testing.T) {
	table := feature.Table{
		{EarlyQuantPriority: 0.1},
		{EarlyQuantPriority: 0.9},
		{EarlyQuantPriority: 0.5},
	}
	assert.Equal(t, Permutation{1, 2, 0}, Quant(table))
}

func TestLifetimeOrdersByFirstUseThenSpan(t *testing.T) {
	table := feature.Table{
		{FirstUseLevel: 2, VariableSpan: 1},
		{FirstUseLevel: 1, VariableSpan: 5},
		{FirstUseLevel: 1, VariableSpan: 2},
	}
	assert.Equal(t, Permutation{2, 1, 0}, Lifetime(table))
}

func TestMincutOrdersByContributionAscending(t *testing.T) {
	table := feature.Table{
		{VariableSpan: 4, CofactorWeight: 0}, // 4 * (1 + 1/0.1) = 44
		{VariableSpan: 1, CofactorWeight: 2}, // 1 * (1 + 0.5) = 1.5
	}
	assert.Equal(t, Permutation{1, 0}, Mincut(table))
}

func TestHybridDegeneratesToNormalSortWhenCriticalEmpty(t *testing.T) {
	table := feature.Table{
		{StructuralImportance: 0.1, FirstUseLevel: 2},
		{StructuralImportance: 0.2, FirstUseLevel: 0},
	}
	assert.Equal(t, Lifetime(table)[0], Hybrid(table)[0])
	assert.Equal(t, Normal(table), Hybrid(table))
}

// Normal replicates the plain Normal-bucket sort key used inside
// Hybrid, for comparison against the degenerate (empty Critical) case.
func Normal(table feature.Table) Permutation {
	return keySort(len(table), func(a, b int) bool {
		if table[a].FirstUseLevel != table[b].FirstUseLevel {
			return table[a].FirstUseLevel < table[b].FirstUseLevel
		}
		if table[a].VariableSpan != table[b].VariableSpan {
			return table[a].VariableSpan < table[b].VariableSpan
		}
		if table[a].Bitwidth != table[b].Bitwidth {
			return table[a].Bitwidth > table[b].Bitwidth
		}
		return a < b
	})
}

func TestHybridInterleavesCriticalWithClosestSameNameNormal(t *testing.T) {
	table := feature.Table{
		{VarName: "x", BitPosition: 0, StructuralImportance: 0.9, CofactorWeight: 5}, // critical
		{VarName: "x", BitPosition: 1, StructuralImportance: 0.1, FirstUseLevel: 0},  // normal, closest to critical x[0]
		{VarName: "y", BitPosition: 0, StructuralImportance: 0.1, FirstUseLevel: 1},  // normal, unrelated name
	}
	perm := Hybrid(table)
	assert.Equal(t, 0, perm[0]) // critical first
	assert.Equal(t, 1, perm[1]) // same-name normal immediately after
	assert.Equal(t, 2, perm[2]) // remaining normal last
}

func TestSiftAndWindowReturnValidPermutations(t *testing.T) {
	table := feature.Table{
		{SupportCount: 3, Bitwidth: 1},
		{SupportCount: 1, Bitwidth: 2},
		{SupportCount: 2, Bitwidth: 1},
	}
	bits := supportBits{
		{true, true, false},
		{false, true, true},
	}
	pc := &pairCounts{m: map[[2]int]int{pairKey(0, 1): 1}}

	siftPerm := Sift(table, bits)
	assert.True(t, Validate(siftPerm, 3))

	windowPerm := Window(table, pc)
	assert.True(t, Validate(windowPerm, 3))
}

func TestSiftAndWindowEmptyOnZeroInputs(t *testing.T) {
	assert.Empty(t, Sift(feature.Table{}, supportBits{}))
	assert.Empty(t, Window(feature.Table{}, &pairCounts{m: map[[2]int]int{}}))
}

func TestPermutationsOfCountsFactorial(t *testing.T) {
	assert.Len(t, permutationsOf([]int{1, 2, 3}), 6)
	assert.Len(t, permutationsOf([]int{1}), 1)
}

func TestMoveElementShiftsInBetween(t *testing.T) {
	assert.Equal(t, Permutation{1, 2, 3, 0}, moveElement(Permutation{0, 1, 2, 3}, 0, 3))
	assert.Equal(t, Permutation{3, 0, 1, 2}, moveElement(Permutation{0, 1, 2, 3}, 3, 0))
	assert.Equal(t, Permutation{0, 1, 2, 3}, moveElement(Permutation{0, 1, 2, 3}, 2, 2))
}
