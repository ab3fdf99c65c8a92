// Package feature computes the per-input structural feature record of
// spec.md §3: support counts, pairwise interaction, gate-level usage,
// cofactor polarity balance, bitvector grouping, and the two derived
// priority scores the ordering algorithms key on.
package feature

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"aagreorder/internal/aag"
	"aagreorder/internal/circuit"
	"aagreorder/internal/support"
)

// Features is one input's structural feature record.
type Features struct {
	SupportCount     int
	InteractionCount int

	// DepthFromInput is always 0: inputs are leaves of the relaxation
	// that assigns gate levels, and the source this is ported from
	// never re-reads a relaxed value back into this field. See
	// spec.md §9 / DESIGN.md — reproduced deliberately, not a bug.
	DepthFromInput int

	FirstUseLevel int // min gate level at which this input is an operand
	LastUseLevel  int // max gate level at which this input is an operand
	VariableSpan  int // LastUseLevel - FirstUseLevel + 1, or 0 if unused

	PosUses, NegUses int
	CofactorWeight   float64

	VarName       string
	BitPosition   int
	Bitwidth      int
	SymmetryGroup []int

	EarlyQuantPriority   float64
	StructuralImportance float64
}

// Table is the feature record for every input, indexed by input index.
type Table []Features

// Extract computes the Table for rec using idx (§2 Circuit Index) and
// an already-built support.Analyzer (shared so the Support Analyzer's
// memoised traversal is computed once for the whole pipeline).
func Extract(rec *aag.Record, idx *circuit.Index, an *support.Analyzer) Table {
	n := rec.I
	t := make(Table, n)
	for i := range t {
		t[i] = Features{VarName: "var_" + strconv.Itoa(i), Bitwidth: 1}
	}
	if n == 0 {
		return t
	}

	extractSupportCounts(rec, an, t)
	extractInteractionCounts(rec, idx, t)
	levels := relaxGateLevels(rec, idx)
	extractUseLevels(rec, idx, levels, t)
	extractCofactorWeights(rec, t)
	extractSymbols(rec, t)
	extractEarlyQuantPriority(t)
	extractStructuralImportance(t)

	return t
}

func extractSupportCounts(rec *aag.Record, an *support.Analyzer, t Table) {
	for _, row := range an.Matrix(rec) {
		for _, v := range row {
			if v >= 0 && v < len(t) {
				t[v].SupportCount++
			}
		}
	}
}

func extractInteractionCounts(rec *aag.Record, idx *circuit.Index, t Table) {
	for _, line := range rec.AndGates {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		in1, err1 := strconv.Atoi(fields[1])
		in2, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			continue
		}
		v1, ok1 := idx.LitToInput[aag.Literal(in1).Strip()]
		v2, ok2 := idx.LitToInput[aag.Literal(in2).Strip()]
		if !ok1 || !ok2 {
			continue
		}
		t[v1].InteractionCount++
		t[v2].InteractionCount++
	}
}

// relaxGateLevels assigns each AND-gate output literal a level via
// iterative relaxation (spec.md §4.3): gate level = max(operand
// levels) + 1, inputs and constants are level 0. Bounded by A+1
// passes per spec.md §4.2/§4.3.
func relaxGateLevels(rec *aag.Record, idx *circuit.Index) map[aag.Literal]int {
	levels := make(map[aag.Literal]int, rec.A)
	outLits := make([]aag.Literal, 0, rec.A)
	ins := make(map[aag.Literal][2]aag.Literal, rec.A)

	for _, line := range rec.AndGates {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		out, e0 := strconv.Atoi(fields[0])
		in1, e1 := strconv.Atoi(fields[1])
		in2, e2 := strconv.Atoi(fields[2])
		if e0 != nil || e1 != nil || e2 != nil {
			continue
		}
		outLit := aag.Literal(out)
		levels[outLit] = 0
		ins[outLit] = [2]aag.Literal{aag.Literal(in1), aag.Literal(in2)}
		outLits = append(outLits, outLit)
	}

	levelOf := func(lit aag.Literal) int {
		stripped := lit.Strip()
		if l, ok := levels[stripped]; ok {
			return l
		}
		return 0 // input or constant
	}

	passes := rec.A + 1
	for p := 0; p < passes; p++ {
		changed := false
		for _, out := range outLits {
			operands := ins[out]
			lvl := maxInt(levelOf(operands[0]), levelOf(operands[1])) + 1
			if lvl != levels[out] {
				levels[out] = lvl
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return levels
}

func extractUseLevels(rec *aag.Record, idx *circuit.Index, levels map[aag.Literal]int, t Table) {
	for i := range t {
		t[i].FirstUseLevel = -1
		t[i].LastUseLevel = -1
	}

	for _, line := range rec.AndGates {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		out, e0 := strconv.Atoi(fields[0])
		in1, e1 := strconv.Atoi(fields[1])
		in2, e2 := strconv.Atoi(fields[2])
		if e0 != nil || e1 != nil || e2 != nil {
			continue
		}
		gateLevel := levels[aag.Literal(out)]

		for _, in := range [2]int{in1, in2} {
			v, ok := idx.LitToInput[aag.Literal(in).Strip()]
			if !ok {
				continue
			}
			if t[v].FirstUseLevel < 0 || gateLevel < t[v].FirstUseLevel {
				t[v].FirstUseLevel = gateLevel
			}
			if gateLevel > t[v].LastUseLevel {
				t[v].LastUseLevel = gateLevel
			}
		}
	}

	for i := range t {
		if t[i].FirstUseLevel < 0 {
			t[i].FirstUseLevel = 0
			t[i].LastUseLevel = 0
			t[i].VariableSpan = 0
			continue
		}
		t[i].VariableSpan = t[i].LastUseLevel - t[i].FirstUseLevel + 1
	}
}

func extractCofactorWeights(rec *aag.Record, t Table) {
	// Rebuild a literal->index map local to this pass since idx is not
	// threaded through; cheap relative to the AND-gate scan below.
	litToIdx := make(map[int]int, len(rec.InLits))
	for i, line := range rec.InLits {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		litToIdx[v&^1] = i
	}

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
		for _, in := range [2]int{in1, in2} {
			v, ok := litToIdx[in&^1]
			if !ok {
				continue
			}
			if in&1 == 0 {
				t[v].PosUses++
			} else {
				t[v].NegUses++
			}
		}
	}

	for i := range t {
		total := t[i].PosUses + t[i].NegUses
		if total == 0 {
			t[i].CofactorWeight = 0
			continue
		}
		ratio := float64(t[i].PosUses) / float64(total)
		balance := 1.0 - 2.0*math.Abs(ratio-0.5)
		t[i].CofactorWeight = balance * float64(total)
	}
}

// extractSymbols parses "iK name" / "iK name[bit]" symbol lines per
// spec.md §4.3: everything before '[' is var_name, the bracketed
// content is bit_position (default 0 on parse failure). Inputs with
// no symbol keep their default var_<idx>/bit 0/bitwidth 1.
func extractSymbols(rec *aag.Record, t Table) {
	groups := make(map[string][]int)

	for _, sym := range rec.Symbols {
		if !strings.HasPrefix(sym, "i") {
			continue
		}
		parts := strings.SplitN(sym, " ", 2)
		if len(parts) != 2 {
			// Symbol lines may use arbitrary whitespace; fall back to
			// a generic field split for the index.
			fields := strings.Fields(sym)
			if len(fields) < 2 {
				continue
			}
			parts = []string{fields[0], strings.Join(fields[1:], " ")}
		}
		idxStr := strings.TrimPrefix(parts[0], "i")
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(t) {
			continue
		}
		name := strings.TrimSpace(parts[1])

		varName := name
		bitPos := 0
		if lb := strings.IndexByte(name, '['); lb >= 0 {
			if rb := strings.IndexByte(name[lb:], ']'); rb >= 0 {
				varName = name[:lb]
				bitStr := name[lb+1 : lb+rb]
				if v, err := strconv.Atoi(strings.TrimSpace(bitStr)); err == nil {
					bitPos = v
				}
			}
		}

		t[idx].VarName = varName
		t[idx].BitPosition = bitPos
		groups[varName] = append(groups[varName], idx)
	}

	for name, members := range groups {
		sorted := append([]int(nil), members...)
		sort.Ints(sorted)
		for _, v := range sorted {
			t[v].Bitwidth = len(sorted)
			t[v].SymmetryGroup = sorted
		}
		_ = name
	}
}

func extractEarlyQuantPriority(t Table) {
	for i := range t {
		supportScore := 1.0 / float64(maxInt(1, t[i].SupportCount))
		interactionScore := 1.0 / float64(maxInt(1, t[i].InteractionCount))
		t[i].EarlyQuantPriority = 0.6*supportScore + 0.4*interactionScore
	}
}

// extractStructuralImportance computes the normalised weighted sum of
// §3: depth (always 0, per DepthFromInput), inverse span, cofactor
// weight, and bitwidth, each divided by its maximum across inputs
// (0 contribution when that maximum is 0).
func extractStructuralImportance(t Table) {
	n := len(t)
	if n == 0 {
		return
	}

	inverseSpan := make([]float64, n)
	var maxDepth, maxCofactor, maxBitwidth float64
	var maxInverseSpan float64
	for i := range t {
		inverseSpan[i] = 1.0 / float64(maxInt(1, t[i].VariableSpan))
		if d := float64(t[i].DepthFromInput); d > maxDepth {
			maxDepth = d
		}
		if t[i].CofactorWeight > maxCofactor {
			maxCofactor = t[i].CofactorWeight
		}
		if b := float64(t[i].Bitwidth); b > maxBitwidth {
			maxBitwidth = b
		}
		if inverseSpan[i] > maxInverseSpan {
			maxInverseSpan = inverseSpan[i]
		}
	}

	ratio := func(v, max float64) float64 {
		if max == 0 {
			return 0
		}
		return v / max
	}

	for i := range t {
		depthScore := ratio(float64(t[i].DepthFromInput), maxDepth)
		spanScore := ratio(inverseSpan[i], maxInverseSpan)
		cofactorScore := ratio(t[i].CofactorWeight, maxCofactor)
		bitwidthScore := ratio(float64(t[i].Bitwidth), maxBitwidth)

		t[i].StructuralImportance = 0.3*depthScore + 0.3*spanScore +
			0.2*cofactorScore + 0.2*bitwidthScore
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
