package order

import (
	"sort"

	"aagreorder/internal/feature"
)

// keySort returns the permutation obtained by stable-sorting [0, n)
// with less. Every algorithm in this file is "a total order on a
// lexicographic tuple of features; stable tie-break is the input
// index" (§4.5) — starting from an ascending slice and sorting
// stably gives that tie-break for free.
func keySort(n int, less func(a, b int) bool) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	sort.SliceStable(p, func(i, j int) bool { return less(p[i], p[j]) })
	return p
}

// Sift performs the SIFT heuristic of §4.5: an initial
// (-support_count, -bitwidth, index) sort, then up to min(20, I)
// passes of local search bounded to a +/-3 window, each move adopted
// only if it strictly lowers the BDD-width surrogate (§4.6), ties
// kept at the current position.
func Sift(t feature.Table, bits supportBits) Permutation {
	n := len(t)
	if n == 0 {
		return Permutation{}
	}

	perm := keySort(n, func(a, b int) bool {
		if t[a].SupportCount != t[b].SupportCount {
			return t[a].SupportCount > t[b].SupportCount
		}
		if t[a].Bitwidth != t[b].Bitwidth {
			return t[a].Bitwidth > t[b].Bitwidth
		}
		return a < b
	})

	maxPasses := n
	if maxPasses > 20 {
		maxPasses = 20
	}

	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for i := 0; i < n; i++ {
			lo := i - 3
			if lo < 0 {
				lo = 0
			}
			hi := i + 4
			if hi > n {
				hi = n
			}

			bestJ := i
			bestCost := widthSurrogate(perm, bits)
			for j := lo; j < hi; j++ {
				if j == i {
					continue
				}
				cand := moveElement(perm, i, j)
				if cost := widthSurrogate(cand, bits); cost < bestCost {
					bestCost = cost
					bestJ = j
				}
			}
			if bestJ != i {
				perm = moveElement(perm, i, bestJ)
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	return perm
}

// moveElement returns a copy of perm with the element at position
// from relocated to position to, shifting the elements in between.
func moveElement(perm Permutation, from, to int) Permutation {
	out := make(Permutation, len(perm))
	copy(out, perm)
	v := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else if to < from {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = v
	return out
}

// Window performs the window-permutation heuristic of §4.5: an
// initial (-bitwidth, -support_count, index) sort, then a size
// min(4, I) window slid with stride window/2, exhaustively minimising
// the window cost surrogate (§4.6) within each window.
func Window(t feature.Table, pc *pairCounts) Permutation {
	n := len(t)
	if n == 0 {
		return Permutation{}
	}

	perm := keySort(n, func(a, b int) bool {
		if t[a].Bitwidth != t[b].Bitwidth {
			return t[a].Bitwidth > t[b].Bitwidth
		}
		if t[a].SupportCount != t[b].SupportCount {
			return t[a].SupportCount > t[b].SupportCount
		}
		return a < b
	})

	w := n
	if w > 4 {
		w = 4
	}
	stride := w / 2
	if stride < 1 {
		stride = 1
	}

	for start := 0; start < n; start += stride {
		end := start + w
		if end > n {
			end = n
		}
		if end-start < 2 {
			continue
		}

		window := append([]int(nil), perm[start:end]...)
		best := window
		bestCost := windowCost(window, t, pc)
		for _, cand := range permutationsOf(window) {
			if cost := windowCost(cand, t, pc); cost < bestCost {
				bestCost = cost
				best = cand
			}
		}
		copy(perm[start:end], best)

		if end == n {
			break
		}
	}

	return perm
}

// permutationsOf returns every ordering of elems, generated by
// recursively choosing each leading element in turn — deterministic
// given a fixed input slice, which is all the window search needs.
func permutationsOf(elems []int) [][]int {
	if len(elems) <= 1 {
		return [][]int{append([]int(nil), elems...)}
	}
	var out [][]int
	for i := range elems {
		rest := make([]int, 0, len(elems)-1)
		rest = append(rest, elems[:i]...)
		rest = append(rest, elems[i+1:]...)
		for _, p := range permutationsOf(rest) {
			out = append(out, append([]int{elems[i]}, p...))
		}
	}
	return out
}

// Interleave performs the bitvector-interleaving heuristic of §4.5:
// inputs are bucketed by var_name, buckets are scored and ordered
// descending, and bits are emitted MSB-first across buckets at each
// shared bit level.
func Interleave(t feature.Table) Permutation {
	n := len(t)
	if n == 0 {
		return Permutation{}
	}

	buckets := make(map[string][]int)
	var names []string
	for i := range t {
		if _, ok := buckets[t[i].VarName]; !ok {
			names = append(names, t[i].VarName)
		}
		buckets[t[i].VarName] = append(buckets[t[i].VarName], i)
	}
	for _, name := range names {
		members := buckets[name]
		sort.SliceStable(members, func(i, j int) bool {
			return t[members[i]].BitPosition < t[members[j]].BitPosition
		})
		buckets[name] = members
	}

	score := func(name string) float64 {
		members := buckets[name]
		sum := 0
		for _, m := range members {
			sum += t[m].SupportCount
		}
		return float64(sum) * float64(len(members))
	}
	minIndex := func(name string) int {
		m := buckets[name][0]
		for _, v := range buckets[name] {
			if v < m {
				m = v
			}
		}
		return m
	}

	sort.SliceStable(names, func(i, j int) bool {
		si, sj := score(names[i]), score(names[j])
		if si != sj {
			return si > sj
		}
		return minIndex(names[i]) < minIndex(names[j])
	})

	widest := 0
	for _, name := range names {
		if len(buckets[name]) > widest {
			widest = len(buckets[name])
		}
	}

	perm := make(Permutation, 0, n)
	for level := widest - 1; level >= 0; level-- {
		for _, name := range names {
			for _, m := range buckets[name] {
				if t[m].BitPosition == level {
					perm = append(perm, m)
					break
				}
			}
		}
	}

	return perm
}

// Quant performs the early-quantification heuristic of §4.5.
func Quant(t feature.Table) Permutation {
	return keySort(len(t), func(a, b int) bool {
		if t[a].EarlyQuantPriority != t[b].EarlyQuantPriority {
			return t[a].EarlyQuantPriority > t[b].EarlyQuantPriority
		}
		if t[a].SupportCount != t[b].SupportCount {
			return t[a].SupportCount < t[b].SupportCount
		}
		if t[a].Bitwidth != t[b].Bitwidth {
			return t[a].Bitwidth > t[b].Bitwidth
		}
		return a < b
	})
}

// DFS performs the depth-first heuristic of §4.5. depth_from_input is
// always 0 (spec.md §9), so this degenerates to a
// (-bitwidth, -bit_position, index) sort, reproduced deliberately.
func DFS(t feature.Table) Permutation {
	return keySort(len(t), func(a, b int) bool {
		if t[a].DepthFromInput != t[b].DepthFromInput {
			return t[a].DepthFromInput < t[b].DepthFromInput
		}
		if t[a].Bitwidth != t[b].Bitwidth {
			return t[a].Bitwidth > t[b].Bitwidth
		}
		if t[a].BitPosition != t[b].BitPosition {
			return t[a].BitPosition > t[b].BitPosition
		}
		return a < b
	})
}

// Mincut performs the min-cut surrogate heuristic of §4.5:
// contribution(v) = variable_span(v) * (1 + 1/max(0.1, cofactor_weight(v))).
func Mincut(t feature.Table) Permutation {
	contribution := make([]float64, len(t))
	for i := range t {
		cw := t[i].CofactorWeight
		if cw < 0.1 {
			cw = 0.1
		}
		contribution[i] = float64(t[i].VariableSpan) * (1 + 1/cw)
	}
	return keySort(len(t), func(a, b int) bool {
		if contribution[a] != contribution[b] {
			return contribution[a] < contribution[b]
		}
		if t[a].VariableSpan != t[b].VariableSpan {
			return t[a].VariableSpan < t[b].VariableSpan
		}
		if t[a].StructuralImportance != t[b].StructuralImportance {
			return t[a].StructuralImportance > t[b].StructuralImportance
		}
		return a < b
	})
}

// Lifetime performs the lifetime heuristic of §4.5.
func Lifetime(t feature.Table) Permutation {
	return keySort(len(t), func(a, b int) bool {
		if t[a].FirstUseLevel != t[b].FirstUseLevel {
			return t[a].FirstUseLevel < t[b].FirstUseLevel
		}
		if t[a].VariableSpan != t[b].VariableSpan {
			return t[a].VariableSpan < t[b].VariableSpan
		}
		if t[a].Bitwidth != t[b].Bitwidth {
			return t[a].Bitwidth > t[b].Bitwidth
		}
		return a < b
	})
}

// Cofactor performs the cofactor-balance heuristic of §4.5.
func Cofactor(t feature.Table) Permutation {
	return keySort(len(t), func(a, b int) bool {
		if t[a].CofactorWeight != t[b].CofactorWeight {
			return t[a].CofactorWeight > t[b].CofactorWeight
		}
		if t[a].VariableSpan != t[b].VariableSpan {
			return t[a].VariableSpan < t[b].VariableSpan
		}
		if t[a].StructuralImportance != t[b].StructuralImportance {
			return t[a].StructuralImportance > t[b].StructuralImportance
		}
		return a < b
	})
}

// Hybrid performs the hybrid heuristic of §4.5: inputs with
// structural_importance >= 0.5 are Critical, the rest Normal. Critical
// is walked in its own sort order; after each Critical emission, the
// closest-by-bit-position Normal sharing its var_name (if any) is
// emitted immediately after and removed from Normal. Remaining Normal
// entries are appended in their sort order. An empty Critical set
// degenerates to exactly the Normal sort (spec.md §9).
func Hybrid(t feature.Table) Permutation {
	n := len(t)
	var critical, normal []int
	for i := range t {
		if t[i].StructuralImportance >= 0.5 {
			critical = append(critical, i)
		} else {
			normal = append(normal, i)
		}
	}

	sort.SliceStable(critical, func(i, j int) bool {
		a, b := critical[i], critical[j]
		if t[a].CofactorWeight != t[b].CofactorWeight {
			return t[a].CofactorWeight > t[b].CofactorWeight
		}
		if t[a].DepthFromInput != t[b].DepthFromInput {
			return t[a].DepthFromInput < t[b].DepthFromInput
		}
		if t[a].Bitwidth != t[b].Bitwidth {
			return t[a].Bitwidth > t[b].Bitwidth
		}
		return a < b
	})
	sort.SliceStable(normal, func(i, j int) bool {
		a, b := normal[i], normal[j]
		if t[a].FirstUseLevel != t[b].FirstUseLevel {
			return t[a].FirstUseLevel < t[b].FirstUseLevel
		}
		if t[a].VariableSpan != t[b].VariableSpan {
			return t[a].VariableSpan < t[b].VariableSpan
		}
		if t[a].Bitwidth != t[b].Bitwidth {
			return t[a].Bitwidth > t[b].Bitwidth
		}
		return a < b
	})

	normalRemaining := make([]bool, n)
	for _, v := range normal {
		normalRemaining[v] = true
	}

	perm := make(Permutation, 0, n)
	for _, c := range critical {
		perm = append(perm, c)

		best := -1
		bestDist := -1
		for _, v := range normal {
			if !normalRemaining[v] || t[v].VarName != t[c].VarName {
				continue
			}
			dist := absInt(t[v].BitPosition - t[c].BitPosition)
			if best < 0 || dist < bestDist {
				best = v
				bestDist = dist
			}
		}
		if best >= 0 {
			perm = append(perm, best)
			normalRemaining[best] = false
		}
	}
	for _, v := range normal {
		if normalRemaining[v] {
			perm = append(perm, v)
		}
	}

	return perm
}
