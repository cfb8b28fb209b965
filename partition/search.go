package partition

import (
	"context"
	"slices"
	"sort"
	"time"
)

// checkEvery is the node interval between deadline / context checks.
const checkEvery = 1024

// labelEngine assigns each block one of `groups` labels.
// All slices are indexed by search position (pos), not by block id.
type labelEngine struct {
	// Problem
	capacity int
	groups   int
	n        int     // number of blocks
	size     []int   // size[pos]
	adj      [][]int // adj[pos]: conflicting positions
	block    []int   // block[pos] = block id

	// Search state
	label   []int   // label[pos] or -1
	load    []int   // load[g]: members already in label g
	touch   []int   // touch[g]: conflict edges from g to unassigned positions
	used    int     // labels 0..used-1 are non-empty
	blocked [][]int // blocked[pos][g]: assigned neighbors of pos in g; nil row when pos has no conflicts

	// Budget
	ctx         context.Context
	useDeadline bool
	deadline    time.Time
	maxNodes    int
	nodes       int
	aborted     bool
	cause       error
}

// newLabelEngine orders blocks by descending size, then descending conflict
// degree, then block id, and reindexes the conflict graph by that order.
func newLabelEngine(bg *blockGraph, capacity, groups int, opts Options) *labelEngine {
	n := len(bg.members)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		bi, bj := order[i], order[j]
		si, sj := len(bg.members[bi]), len(bg.members[bj])
		if si != sj {
			return si > sj
		}
		di, dj := len(bg.adj[bi]), len(bg.adj[bj])
		if di != dj {
			return di > dj
		}

		return bi < bj
	})

	pos := make([]int, n)
	for p, b := range order {
		pos[b] = p
	}

	e := &labelEngine{
		capacity: capacity,
		groups:   groups,
		n:        n,
		size:     make([]int, n),
		adj:      make([][]int, n),
		block:    order,
		label:    make([]int, n),
		load:     make([]int, groups),
		touch:    make([]int, groups),
		blocked:  make([][]int, n),
		ctx:      opts.Ctx,
		maxNodes: opts.MaxNodes,
	}
	for p, b := range order {
		e.size[p] = len(bg.members[b])
		e.label[p] = -1
		row := make([]int, len(bg.adj[b]))
		for i, nb := range bg.adj[b] {
			row[i] = pos[nb]
		}
		e.adj[p] = row
		if len(row) > 0 {
			e.blocked[p] = make([]int, groups)
		}
	}
	if e.ctx == nil {
		e.ctx = context.Background()
	}
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}

	return e
}

// stop counts a node and reports whether the budget is spent.
// The node bound is exact; deadline and context checks are sparse.
func (e *labelEngine) stop() bool {
	if e.aborted {
		return true
	}
	e.nodes++
	if e.maxNodes > 0 && e.nodes > e.maxNodes {
		e.aborted = true
		return true
	}
	if e.nodes%checkEvery != 1 {
		return false
	}
	if err := e.ctx.Err(); err != nil {
		e.aborted, e.cause = true, err
		return true
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		e.aborted = true
		return true
	}

	return false
}

// fits reports whether the block at pos may take label g right now.
func (e *labelEngine) fits(pos, g int) bool {
	if e.load[g]+e.size[pos] > e.capacity {
		return false
	}

	return e.blocked[pos] == nil || e.blocked[pos][g] == 0
}

// viable reports whether the unassigned block at pos still has a label.
// Labels ≥ used are empty and interchangeable, so only one is checked.
func (e *labelEngine) viable(pos int) bool {
	limit := min(e.used+1, e.groups)
	for g := 0; g < limit; g++ {
		if e.fits(pos, g) {
			return true
		}
	}

	return false
}

// assign puts pos into g and updates loads and neighbor counters.
// It reports whether every unassigned neighbor is still viable.
func (e *labelEngine) assign(pos, g int) bool {
	// 1. pos stops being unassigned: its counters no longer touch any label.
	for _, nb := range e.adj[pos] {
		if l := e.label[nb]; l >= 0 {
			e.touch[l]--
		}
	}

	// 2. Record the label and its load.
	e.label[pos] = g
	e.load[g] += e.size[pos]
	if g == e.used {
		e.used++
	}

	// 3. Block g for every unassigned neighbor.
	for _, nb := range e.adj[pos] {
		if e.label[nb] < 0 {
			e.blocked[nb][g]++
			e.touch[g]++
		}
	}

	// 4. Forward check: each unassigned neighbor must keep a label.
	for _, nb := range e.adj[pos] {
		if e.label[nb] < 0 && !e.viable(nb) {
			return false
		}
	}

	return true
}

// unassign reverts assign(pos, g).
func (e *labelEngine) unassign(pos, g int) {
	for _, nb := range e.adj[pos] {
		if e.label[nb] < 0 {
			e.blocked[nb][g]--
			e.touch[g]--
		}
	}
	e.load[g] -= e.size[pos]
	if e.load[g] == 0 {
		e.used--
	}
	e.label[pos] = -1
	for _, nb := range e.adj[pos] {
		if l := e.label[nb]; l >= 0 {
			e.touch[l]++
		}
	}
}

// dfs labels positions pos..n-1; true means a full labeling was found and
// is left in e.label.
//
// Two non-empty labels with equal load and touch == 0 are interchangeable
// for every block still unassigned, so only the first of them is tried.
func (e *labelEngine) dfs(pos int) bool {
	// 1. Budget.
	if e.stop() {
		return false
	}

	// 2. Leaf: every block labeled; all groups must be non-empty.
	if pos == e.n {
		return e.used == e.groups
	}

	// 3. Branch over existing labels plus at most one fresh label. Blocks
	// left after this one must be able to fill every empty label.
	left := e.n - pos - 1
	limit := min(e.used+1, e.groups)
	var buf [8]int
	seen := buf[:0] // loads of untouched labels already tried here
	for g := 0; g < limit; g++ {
		usedAfter := e.used
		if g == e.used {
			usedAfter++
		}
		if e.groups-usedAfter > left || !e.fits(pos, g) {
			continue
		}
		if g < e.used && e.touch[g] == 0 {
			if slices.Contains(seen, e.load[g]) {
				continue
			}
			seen = append(seen, e.load[g])
		}

		// 4. Descend; undo on failure unless the budget ran out.
		if e.assign(pos, g) && e.dfs(pos+1) {
			return true
		}
		e.unassign(pos, g)
		if e.aborted {
			return false
		}
	}

	return false
}

// run executes the search and returns block id -> label.
func (e *labelEngine) run() ([]int, bool) {
	if !e.dfs(0) {
		return nil, false
	}
	labels := make([]int, e.n)
	for p, b := range e.block {
		labels[b] = e.label[p]
	}

	return labels, true
}
