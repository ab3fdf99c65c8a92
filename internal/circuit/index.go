// Package circuit builds the derived indices (§2 Circuit Index) used by
// every later stage: the input-literal map and the AND-gate map. Both
// are built once, by a single linear scan each, and never mutated.
package circuit

import (
	"strconv"
	"strings"

	"aagreorder/internal/aag"
)

// AndGate is one AND-gate's two operand literals, keyed by its (even)
// output literal.
type AndGate struct {
	In1, In2 aag.Literal
}

// Index holds the derived lookup structures for one parsed Record.
type Index struct {
	// LitToInput maps an even input literal to its dense input index.
	LitToInput map[aag.Literal]int
	// AndMap maps an AND-gate's even output literal to its operands.
	AndMap map[aag.Literal]AndGate
	// AndOrder preserves and_gates file order for deterministic iteration.
	AndOrder []aag.Literal
}

// Build scans rec.InLits and rec.AndGates once each. Malformed lines
// (not parseable as the expected integer fields) are skipped — per
// spec.md §4.1/§7 (UnparseableRecord), this is not a fatal error.
// Duplicate AND-gate output literals are undefined behaviour in AIGER;
// the last one encountered wins.
func Build(rec *aag.Record) *Index {
	idx := &Index{
		LitToInput: make(map[aag.Literal]int, rec.I),
		AndMap:     make(map[aag.Literal]AndGate, rec.A),
	}

	for i, line := range rec.InLits {
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		lit := aag.Literal(v).Strip()
		idx.LitToInput[lit] = i
	}

	for _, line := range rec.AndGates {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		out, err1 := strconv.Atoi(fields[0])
		in1, err2 := strconv.Atoi(fields[1])
		in2, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		outLit := aag.Literal(out)
		idx.AndMap[outLit] = AndGate{In1: aag.Literal(in1), In2: aag.Literal(in2)}
		idx.AndOrder = append(idx.AndOrder, outLit)
	}

	return idx
}
