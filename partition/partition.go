package partition

import (
	"fmt"
	"sort"
	"time"
)

// Partition splits people into ⌈len(people)/capacity⌉ groups satisfying
// every constraint. It has no side effects and never retains its inputs.
//
// Contracts:
//   - capacity ≥ 1; people non-empty, names non-empty and unique.
//   - Every constraint names two distinct people from the list.
//
// Errors:
//   - ErrValidation (and its children) for malformed input.
//   - ErrConstraintConflict when a pair is both Together and Apart, directly
//     or through a chain of Together pairs.
//   - ErrInfeasible when no grouping exists.
//   - ErrTimedOut (also ErrInfeasible) when the budget runs out. If the
//     context was cancelled, its error is wrapped as well.
//
// Complexity: see package doc.
func Partition(people []string, constraints []Constraint, capacity int, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	in, err := newInstance(people, constraints, capacity)
	if err != nil {
		return Result{}, err
	}
	bg, err := buildBlocks(in)
	if err != nil {
		return Result{}, err
	}

	stats := Stats{Blocks: len(bg.members), Conflicts: bg.edges}
	groups := GroupCount(len(people), capacity)

	// Cheap structural infeasibility before search.
	for _, m := range bg.members {
		if len(m) > capacity {
			return Result{Stats: stats}, fmt.Errorf("%w: %d people must sit together with %q but capacity is %d",
				ErrInfeasible, len(m), people[m[0]], capacity)
		}
	}
	if len(bg.members) < groups {
		return Result{Stats: stats}, fmt.Errorf("%w: %d blocks cannot fill %d groups",
			ErrInfeasible, len(bg.members), groups)
	}
	if err := packingBound(bg, capacity, groups); err != nil {
		return Result{Stats: stats}, err
	}

	start := time.Now()
	e := newLabelEngine(bg, capacity, groups, o)
	labels, ok := e.run()
	stats.Nodes = e.nodes
	stats.Elapsed = time.Since(start)

	if !ok {
		if e.aborted {
			if e.cause != nil {
				return Result{Stats: stats}, fmt.Errorf("%w after %d nodes: %w", ErrTimedOut, e.nodes, e.cause)
			}

			return Result{Stats: stats}, fmt.Errorf("%w after %d nodes", ErrTimedOut, e.nodes)
		}

		return Result{Stats: stats}, fmt.Errorf("%w: search exhausted after %d nodes", ErrInfeasible, e.nodes)
	}

	return Result{Groups: expand(in, bg, labels, groups), Stats: stats}, nil
}

// packingBound rejects inputs whose block sizes cannot be packed into
// groups bins: a bin holds at most capacity/s blocks of size ≥ s, so for
// every size s the number of blocks at least that large is bounded.
//
// Complexity: O(b log b) for b blocks.
func packingBound(bg *blockGraph, capacity, groups int) error {
	sizes := make([]int, len(bg.members))
	for b, m := range bg.members {
		sizes[b] = len(m)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	for i, s := range sizes {
		// Only the last block of each size class needs checking.
		if i+1 < len(sizes) && sizes[i+1] == s {
			continue
		}
		if room := groups * (capacity / s); i+1 > room {
			return fmt.Errorf("%w: %d blocks of %d or more people, but %d groups of %d hold at most %d",
				ErrInfeasible, i+1, s, groups, capacity, room)
		}
	}

	return nil
}

// PartitionPairs is Partition with raw Together / Apart pair lists.
func PartitionPairs(people []string, together, apart [][2]string, capacity int, opts ...Option) (Result, error) {
	return Partition(people, Constraints(together, apart), capacity, opts...)
}

// expand turns block labels into groups of names, keeping input order
// inside each group.
func expand(in *instance, bg *blockGraph, labels []int, groups int) []Group {
	out := make([]Group, groups)
	for g := range out {
		out[g] = make(Group, 0, min(in.capacity, len(in.names)))
	}
	for i, name := range in.names {
		g := labels[bg.blockOf[i]]
		out[g] = append(out[g], name)
	}

	return out
}
