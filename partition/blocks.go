package partition

import (
	"fmt"
	"sort"
)

// dsu is a disjoint-set forest with path compression and union by rank.
type dsu struct {
	parent []int
	rank   []int
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}

	return d
}

// find returns the root of x, halving the path on the way up.
func (d *dsu) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}

	return x
}

// union merges the sets of x and y.
func (d *dsu) union(x, y int) {
	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return
	}
	if d.rank[rx] < d.rank[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}
}

// blockGraph is the contracted problem: rigid blocks plus their conflicts.
type blockGraph struct {
	members [][]int // members[b]: person indices, ascending
	blockOf []int   // blockOf[person] = b
	adj     [][]int // adj[b]: conflicting blocks, ascending, no duplicates
	edges   int
}

// buildBlocks merges Together pairs into blocks and lifts Apart pairs to
// block conflicts. Blocks are numbered by their smallest member index.
//
// Errors: ErrConstraintConflict when an Apart pair falls inside one block.
//
// Complexity: O(n + p·α(n)) plus O(E log E) to sort adjacency.
func buildBlocks(in *instance) (*blockGraph, error) {
	// 1. Merge every Together pair.
	n := len(in.names)
	d := newDSU(n)
	for _, p := range in.together {
		d.union(p[0], p[1])
	}

	// 2. Number blocks in order of their first member.
	bg := &blockGraph{blockOf: make([]int, n)}
	rootBlock := make(map[int]int, n)
	for i := 0; i < n; i++ {
		r := d.find(i)
		b, ok := rootBlock[r]
		if !ok {
			b = len(bg.members)
			rootBlock[r] = b
			bg.members = append(bg.members, nil)
		}
		bg.members[b] = append(bg.members[b], i)
		bg.blockOf[i] = b
	}

	// 3. Lift Apart pairs to block edges; a pair inside one block is a
	// contradiction, parallel edges collapse.
	bg.adj = make([][]int, len(bg.members))
	seen := make(map[[2]int]struct{}, len(in.apart))
	for _, p := range in.apart {
		bu, bv := bg.blockOf[p[0]], bg.blockOf[p[1]]
		if bu == bv {
			return nil, fmt.Errorf("%w: %q and %q must sit apart but together constraints join them",
				ErrConstraintConflict, in.names[p[0]], in.names[p[1]])
		}
		if bv < bu {
			bu, bv = bv, bu
		}
		key := [2]int{bu, bv}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		bg.adj[bu] = append(bg.adj[bu], bv)
		bg.adj[bv] = append(bg.adj[bv], bu)
		bg.edges++
	}

	// 4. Sorted neighbor lists keep the search order deterministic.
	for _, row := range bg.adj {
		sort.Ints(row)
	}

	return bg, nil
}
