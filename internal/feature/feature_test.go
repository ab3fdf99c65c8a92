package feature

import (
	"strings"
	"testing"

	"aagreorder/internal/aag"
	"aagreorder/internal/circuit"
	"aagreorder/internal/support"
	"github.com/stretchr/testify/assert"
)

func buildTable(t *testing.T, src string) Table {
	t.Helper()
	rec, err := aag.Parse(strings.NewReader(src))
	assert.NoError(t, err)
	idx := circuit.Build(rec)
	an := support.New(idx)
	return Extract(rec, idx, an)
}

const threeInputRecord = `aag 7 3 0 1 2
2
4
6
14
8 2 4
14 8 6
i0 a
i1 b
i2 c
o0 out
`

func TestExtractEmptyOnZeroInputs(t *testing.T) {
	table := buildTable(t, "aag 0 0 0 0 0\n")
	assert.Empty(t, table)
}

func TestExtractSupportAndInteractionCounts(t *testing.T) {
	table := buildTable(t, threeInputRecord)
	assert.Len(t, table, 3)

	// SupportCount counts outputs, not gates: the single output (gate
	// 14) has support {a, b, c}, so each input is counted once.
	assert.Equal(t, 1, table[0].SupportCount)
	assert.Equal(t, 1, table[1].SupportCount)
	assert.Equal(t, 1, table[2].SupportCount)

	// Only gate 8 has both operands as direct input literals.
	assert.Equal(t, 1, table[0].InteractionCount)
	assert.Equal(t, 1, table[1].InteractionCount)
	assert.Equal(t, 0, table[2].InteractionCount)
}

func TestExtractSymbolsSetVarNameAndBitwidth(t *testing.T) {
	table := buildTable(t, threeInputRecord)
	assert.Equal(t, "a", table[0].VarName)
	assert.Equal(t, "b", table[1].VarName)
	assert.Equal(t, "c", table[2].VarName)
	assert.Equal(t, 1, table[0].Bitwidth)
}

func TestExtractBitvectorGrouping(t *testing.T) {
	src := `aag 4 4 0 1 1
2
4
6
8
8 2 4
i0 x[1]
i1 x[0]
i2 y[0]
i3 z
o0 out
`
	table := buildTable(t, src)
	assert.Equal(t, "x", table[0].VarName)
	assert.Equal(t, 1, table[0].BitPosition)
	assert.Equal(t, 2, table[0].Bitwidth)
	assert.Equal(t, "x", table[1].VarName)
	assert.Equal(t, 0, table[1].BitPosition)
	assert.Equal(t, 2, table[1].Bitwidth)
	assert.Equal(t, 1, table[2].Bitwidth)
	assert.Equal(t, 1, table[3].Bitwidth)
}

func TestExtractDepthFromInputAlwaysZero(t *testing.T) {
	table := buildTable(t, threeInputRecord)
	for _, f := range table {
		assert.Equal(t, 0, f.DepthFromInput)
	}
}

func TestExtractCofactorWeightZeroWhenOnlyPositive(t *testing.T) {
	table := buildTable(t, threeInputRecord)
	// Both operands of gate 8 appear only in positive polarity (literals
	// 2 and 4 are even); balance should be at its minimum (0), so
	// cofactor weight is 0 despite nonzero use count.
	assert.Equal(t, 0.0, table[0].CofactorWeight)
}

func TestExtractStructuralImportanceWithinUnitRange(t *testing.T) {
	table := buildTable(t, threeInputRecord)
	for _, f := range table {
		assert.GreaterOrEqual(t, f.StructuralImportance, 0.0)
		assert.LessOrEqual(t, f.StructuralImportance, 1.0)
	}
}
