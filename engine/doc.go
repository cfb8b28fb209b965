// Package engine is the composition root of a seating run:
// validate → partition.Partition → allocate.Allocate → *seating.Plan.
//
// A run is synchronous and CPU-bound. It shares no state with other runs;
// an *Engine only holds configuration, so one value may serve concurrent
// callers. Callers exposing Run behind a request boundary should give each
// call its own goroutine (and a context with a deadline) so one expensive
// search cannot stall unrelated work.
//
// Every failure is a *Failure whose Kind names the outcome:
//
//	Validation            malformed request (capacity, names, pairs, tables)
//	ConstraintConflict    together/apart contradiction found without search
//	Infeasible            search exhausted, no grouping exists
//	TimedOut              search budget or context ran out
//	TooManyGroups         allocation stage: more groups than tables
//	GroupExceedsCapacity  allocation stage: a group does not fit a table
//	CapacityExceeded      more people than seats
//	Internal              broken invariant inside the core (a defect)
//
// The underlying sentinel from partition or allocate stays reachable through
// errors.Is. Nothing is retried here; re-running with another seed never
// changes feasibility.
package engine
