package order

import (
	"runtime"
	"sort"
	"sync"
)

// AllNames lists every selectable algorithm (§6), in the order the
// compare command reports them when costs tie.
var AllNames = []Name{
	Sift, Window, Interleave, Quant,
	DFS, Mincut, Lifetime, Cofactor, Hybrid,
	RCMName,
}

// Score is one algorithm's BDD-width surrogate cost, as produced by
// the compare command (SPEC_FULL.md §6) — a comparison metric only,
// no BDD is ever built.
type Score struct {
	Algorithm Name
	Cost      int
}

// Table collects Scores from concurrent workers, the same
// lock-guarded append-then-sort-on-read shape as the teacher's
// pkg/result.Table.
type Table struct {
	mu     sync.Mutex
	scores []Score
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a Score into the table.
func (t *Table) Add(s Score) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scores = append(t.scores, s)
}

// Scores returns a copy of every Score, sorted ascending by Cost (best
// — i.e. narrowest surrogate BDD width — first), ties broken by the
// AllNames order.
func (t *Table) Scores() []Score {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Score, len(t.scores))
	copy(out, t.scores)

	rank := make(map[Name]int, len(AllNames))
	for i, n := range AllNames {
		rank[n] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return rank[out[i].Algorithm] < rank[out[j].Algorithm]
	})
	return out
}

// Len returns the number of scores recorded.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.scores)
}

// RunCompare evaluates score(name) for every name in AllNames across
// numWorkers goroutines (0 meaning runtime.NumCPU(), the teacher's
// WorkerPool convention) and returns the populated Table. This mirrors
// the teacher's pkg/search.WorkerPool.RunTasks: a buffered channel of
// work items drained by a fixed worker count, writing results into a
// single mutex-guarded Table.
func RunCompare(numWorkers int, score func(Name) int) *Table {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(AllNames) {
		numWorkers = len(AllNames)
	}

	table := NewTable()
	ch := make(chan Name, len(AllNames))
	for _, n := range AllNames {
		ch <- n
	}
	close(ch)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range ch {
				table.Add(Score{Algorithm: name, Cost: score(name)})
			}
		}()
	}
	wg.Wait()

	return table
}
