package order

import (
	"testing"

	"aagreorder/internal/feature"
	"github.com/stretchr/testify/assert"
)

func TestWidthSurrogateSumsActiveSetsPerLevel(t *testing.T) {
	// Two outputs: row0 supports {0,1}, row1 supports {1}.
	bits := supportBits{
		{true, true},
		{false, true},
	}
	// perm = identity: level0 var0, active = {0,1} (row0 only) -> 2.
	// level1 var1, active = {1} (row0 and row1 both still include var1
	// at or after level1) -> 1. total = 3.
	assert.Equal(t, 3, widthSurrogate(Permutation{0, 1}, bits))
}

func TestWindowCostRewardsSameNameAdjacency(t *testing.T) {
	table := feature.Table{
		{VarName: "x", BitPosition: 0},
		{VarName: "x", BitPosition: 1},
	}
	pc := &pairCounts{m: map[[2]int]int{}}
	assert.Equal(t, -2, windowCost([]int{0, 1}, table, pc))
}

func TestWindowCostPenalisesInteractionByBitDistance(t *testing.T) {
	table := feature.Table{
		{VarName: "a", BitPosition: 0},
		{VarName: "b", BitPosition: 3},
	}
	pc := &pairCounts{m: map[[2]int]int{pairKey(0, 1): 2}}
	// interaction 2 * (|0-3|+1) = 8, no same-name bonus.
	assert.Equal(t, 8, windowCost([]int{0, 1}, table, pc))
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, pairKey(3, 1), pairKey(1, 3))
}

func TestAbsInt(t *testing.T) {
	assert.Equal(t, 5, absInt(-5))
	assert.Equal(t, 5, absInt(5))
	assert.Equal(t, 0, absInt(0))
}
