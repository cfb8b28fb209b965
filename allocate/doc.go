// Package allocate places finished groups onto physical tables.
//
// Allocate builds numTables empty tables of the given capacity, draws a
// uniformly random permutation of those tables from an injected
// RandomSource, and pairs the permuted tables with the groups by position:
// group i sits at table perm[i], tables left over stay empty. Members fill
// seats 1, 2, … in the order they appear in their group, so the same
// groups and the same random stream always give the same Plan.
//
// Randomness:
//
//	The shuffle only decides which table number a group receives; it
//	never affects feasibility. Tests pass NewSeededSource(seed) for
//	reproducible output; production callers use NewSource. A nil source
//	falls back to the default seeded stream.
//
// Failures (checked before any table is touched):
//
//	ErrInvalidArgument       numTables < 1 or capacity < 1, or the layout
//	                         exceeds MaxTables tables / MaxSeats seats
//	ErrCapacityExceeded      total members > numTables × capacity
//	ErrTooManyGroups         len(groups) > numTables
//	ErrGroupExceedsCapacity  some group larger than capacity
//	ErrInvalidGroup          empty group, empty name or a name seated twice
//
// ErrInternal marks a seat double-assignment or a placement failure after
// the checks passed. It means the allocator's own bookkeeping is broken and
// must never be shown to end users as an input problem.
//
// Complexity: O(T + S) time and memory for T tables and S seats.
package allocate
