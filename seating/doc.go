// Package seating models the physical side of a seating run: seats, tables
// and the immutable SeatingPlan that a run hands back to its caller.
//
// Entities:
//
//   - Seat: identified by (table id, 1-based seat index); holds at most one
//     occupant. An empty Occupant means the seat is free.
//   - Table: a fixed array of Seats created at construction. The number of
//     free seats is tracked as a counter, so Free/HasFree are O(1).
//   - Plan: a deep snapshot of a set of Tables, ordered by table id. Plans
//     never change after NewPlan returns.
//
// Occupancy contract:
//
//	An occupied seat is never overwritten. PlaceAt on an occupied seat
//	returns *OccupiedError (errors.Is(err, ErrSeatOccupied)); callers decide
//	whether that is a user error or a broken invariant. Vacate is the only
//	way to free a seat again.
//
// Tabular projection:
//
//	Plan.Rows renders one column per table ("Table_<id>") and one row per
//	seat index, with "" where a seat is free. This is the shape the roster
//	package writes to CSV.
//
//	          Table_1  Table_2
//	Seat_1    Alice    Carol
//	Seat_2    Bob
//
// Concurrency: Table is not safe for concurrent mutation; a Table belongs to
// exactly one allocation run. Plan is read-only and safe to share.
package seating
