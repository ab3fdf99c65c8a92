package order

import (
	"strconv"
	"strings"

	"aagreorder/internal/aag"
	"aagreorder/internal/circuit"
	"aagreorder/internal/feature"
	"aagreorder/internal/support"
)

// supportBits is a dense [O][I] view of the support matrix, built once
// per run for the BDD-width surrogate (§4.6): row o, column v is true
// iff output o's support set contains input v.
type supportBits [][]bool

// BuildSupportBits is the exported entry point buildSupportBits for
// callers outside this package (the CLI's compare/reorder dispatch,
// which needs to build it once and pass it to both Sift and the
// comparison scoring).
func BuildSupportBits(rec *aag.Record, an *support.Analyzer) supportBits {
	return buildSupportBits(rec, an)
}

func buildSupportBits(rec *aag.Record, an *support.Analyzer) supportBits {
	matrix := an.Matrix(rec)
	bits := make(supportBits, len(matrix))
	for o, row := range matrix {
		bits[o] = make([]bool, rec.I)
		for _, v := range row {
			bits[o][v] = true
		}
	}
	return bits
}

// widthSurrogate computes the BDD-width surrogate cost of perm per
// spec.md §4.6: at each level, the active set accumulates every
// later-or-equal position that shares an output's support with the
// variable placed at that level; total cost is the sum of widths.
// WidthSurrogate is the exported entry point widthSurrogate for
// callers outside this package (the compare subcommand's ranking).
func WidthSurrogate(perm Permutation, bits supportBits) int {
	return widthSurrogate(perm, bits)
}

func widthSurrogate(perm Permutation, bits supportBits) int {
	n := len(perm)
	total := 0
	for l := 0; l < n; l++ {
		v := perm[l]
		active := make(map[int]struct{})
		for _, row := range bits {
			if !row[v] {
				continue
			}
			for k := l; k < n; k++ {
				u := perm[k]
				if row[u] {
					active[u] = struct{}{}
				}
			}
		}
		total += len(active)
	}
	return total
}

// pairCounts caches, for every pair of inputs (a, b), the number of
// AND gates whose two operands are exactly the input literals of a
// and b (either order) — the "interaction(a,b)" term of the window
// cost surrogate (§4.6).
type pairCounts struct {
	m map[[2]int]int
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// BuildPairCounts is the exported entry point buildPairCounts for
// callers outside this package (the CLI's Window dispatch).
func BuildPairCounts(rec *aag.Record, idx *circuit.Index) *pairCounts {
	return buildPairCounts(rec, idx)
}

func buildPairCounts(rec *aag.Record, idx *circuit.Index) *pairCounts {
	pc := &pairCounts{m: make(map[[2]int]int)}
	for _, line := range rec.AndGates {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		in1, e1 := strconv.Atoi(fields[1])
		in2, e2 := strconv.Atoi(fields[2])
		if e1 != nil || e2 != nil {
			continue
		}
		va, ok1 := idx.LitToInput[aag.Literal(in1).Strip()]
		vb, ok2 := idx.LitToInput[aag.Literal(in2).Strip()]
		if !ok1 || !ok2 {
			continue
		}
		pc.m[pairKey(va, vb)]++
	}
	return pc
}

func (pc *pairCounts) count(a, b int) int {
	return pc.m[pairKey(a, b)]
}

// windowCost computes the window cost surrogate of §4.6 for a window
// of adjacent input indices (already in candidate order): same-name
// neighbors are rewarded (-2), and every neighbor pair pays for its
// AND-gate interaction scaled by bit-position distance.
func windowCost(win []int, t feature.Table, pc *pairCounts) int {
	cost := 0
	for i := 0; i+1 < len(win); i++ {
		a, b := win[i], win[i+1]
		if t[a].VarName == t[b].VarName {
			cost -= 2
		}
		inter := pc.count(a, b)
		cost += inter * (absInt(t[a].BitPosition-t[b].BitPosition) + 1)
	}
	return cost
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
