// Package order implements the nine variable-ordering heuristics of
// spec.md §4.5 plus the Reverse Cuthill–McKee graph ordering of §4.4
// and the cost surrogates of §4.6. Each algorithm consumes a
// feature.Table and returns a Permutation of [0, I).
package order

// Permutation is a bijection [0, I) -> [0, I) with Permutation[new] =
// old (spec.md §3). An empty Permutation denotes the I=0 case.
type Permutation []int

// Name identifies one of the ten selectable orderings (§6).
type Name string

const (
	Sift       Name = "sift"
	Window     Name = "window"
	Interleave Name = "interleave"
	Quant      Name = "quant"
	DFS        Name = "dfs"
	Mincut     Name = "mincut"
	Lifetime   Name = "lifetime"
	Cofactor   Name = "cofactor"
	Hybrid     Name = "hybrid"
	RCMName    Name = "rcm"
)

// Family is one of the two algorithm-selector families the original
// two scripts exposed as separate argparse --algo choices lists
// (original_source/reorder_aag_hybrid.py, reorder_aag_std.py): each
// script defaulted its own unknown/omitted selection independently.
// Merging both scripts' algorithms behind one --algo flag (§6) loses
// that script identity for names outside both known sets, so the CLI
// carries a --family flag solely to pick the fallback target.
type Family int

const (
	// HybridFamily is sift/window/interleave/quant; unknown names
	// fall back to Sift (reorder_aag_hybrid.py's default).
	HybridFamily Family = iota
	// SingleOutputFamily is dfs/mincut/lifetime/cofactor/hybrid;
	// unknown names fall back to Mincut (reorder_aag_std.py's
	// default).
	SingleOutputFamily
)

// Resolve maps a possibly-unknown CLI algorithm name to a valid Name,
// per §6's documented fallback rule, reporting whether a fallback was
// applied (for the caller's diagnostic). Names belonging to the
// known set resolve to themselves regardless of family, including
// rcm, which has no selector-family siblings and so never falls back
// to anything else. An unrecognised name resolves against the
// supplied family.
func Resolve(requested Name, family Family) (resolved Name, fellBack bool) {
	switch requested {
	case Sift, Window, Interleave, Quant, DFS, Mincut, Lifetime, Cofactor, Hybrid, RCMName:
		return requested, false
	}
	if family == HybridFamily {
		return Sift, true
	}
	return Mincut, true
}

func identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Validate reports whether p is a permutation of [0, n): length n with
// no duplicates (§7 OrderSizeMismatch).
func Validate(p Permutation, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// OrDefault returns p if it validates against n, otherwise the
// identity permutation (§7 OrderSizeMismatch recovery).
func OrDefault(p Permutation, n int) Permutation {
	if Validate(p, n) {
		return p
	}
	return identity(n)
}
