// Package partition splits a set of people into capacity-bounded groups that
// honor pairwise "together" and "apart" constraints.
//
// Problem:
//
//	Given n names, a capacity c ≥ 1 and two lists of unordered name pairs,
//	produce exactly G = ⌈n/c⌉ groups such that
//	  • every group has between 1 and c members,
//	  • every name lands in exactly one group,
//	  • both names of a Together pair share a group,
//	  • the names of an Apart pair never share a group.
//	This is graph coloring with bin capacities; it is NP-hard in general.
//	Any feasible grouping is accepted, there is no objective.
//
// Pipeline:
//
//  1. Validation: capacity, names (non-empty, unique), constraint endpoints
//     (known, distinct). A pair listed both Together and Apart is a
//     ConstraintConflict.
//  2. Blocks: Together pairs are merged with union-find (path compression,
//     union by rank). Each connected component is a rigid block. An Apart
//     pair inside one block is a ConstraintConflict, reported before search.
//  3. Conflict graph: two blocks conflict if any Apart pair crosses them.
//  4. Search: depth-first labeling of blocks with G labels:
//     blocks in descending size (then degree, then first appearance), labels
//     in ascending index, at most one fresh (empty) label tried per node to
//     cut label symmetry, forward checking on conflicting neighbors, and a
//     pruning rule that keeps enough unassigned blocks to fill every empty
//     label. The search is exact: it fails only when no grouping exists or
//     when the budget runs out.
//  5. Expansion: labels map back to groups of names; group order follows
//     label order and members keep their input order.
//
// Budget:
//
//	Options.TimeLimit, Options.MaxNodes and Options.Ctx bound the search.
//	Deadline and context checks are sparse (every 1024 nodes). Running out of
//	budget returns ErrTimedOut, which also matches ErrInfeasible.
//
// Determinism:
//
//	Identical inputs (same order of people and constraints) always produce
//	identical groups; no randomness is used here.
//
// Complexity:
//   - Validation and blocks: O(n + p·α(n)) for p constraint pairs.
//   - Search: worst case O(G^B) for B blocks; per node O(G + deg).
//   - Memory: O(n + p + B·G).
package partition
