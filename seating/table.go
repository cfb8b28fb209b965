package seating

import (
	"fmt"
	"strings"
)

// Table is a fixed collection of Seats.
//
// Invariants:
//   - len(seats) == capacity for the whole lifetime of the table.
//   - free == number of seats with an empty Occupant.
//   - every seat with index < next+1 that Place has passed over is occupied,
//     unless Vacate moved next back.
type Table struct {
	id    int
	seats []Seat
	free  int
	next  int // 0-based hint: no free seat lives below this position
}

// NewTable builds a table with capacity empty seats numbered 1..capacity.
//
// Errors: ErrInvalidTableID, ErrInvalidCapacity.
//
// Complexity: O(capacity).
func NewTable(id, capacity int) (*Table, error) {
	if id < 1 {
		return nil, ErrInvalidTableID
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	t := &Table{
		id:    id,
		seats: make([]Seat, capacity),
		free:  capacity,
	}
	for i := range t.seats {
		t.seats[i] = Seat{TableID: id, Index: i + 1}
	}

	return t, nil
}

// ID returns the table id.
func (t *Table) ID() int { return t.id }

// Label returns "Table_<id>".
func (t *Table) Label() string { return TableLabel(t.id) }

// Capacity returns the number of seats at the table.
func (t *Table) Capacity() int { return len(t.seats) }

// Free returns the number of unoccupied seats. O(1).
func (t *Table) Free() int { return t.free }

// HasFree reports whether at least one seat is unoccupied. O(1).
func (t *Table) HasFree() bool { return t.free > 0 }

// Seat returns a copy of the seat at the 1-based index.
func (t *Table) Seat(index int) (Seat, error) {
	if index < 1 || index > len(t.seats) {
		return Seat{}, fmt.Errorf("%w: %d not in [1, %d]", ErrSeatIndex, index, len(t.seats))
	}

	return t.seats[index-1], nil
}

// Seats returns a copy of all seats in index order.
func (t *Table) Seats() []Seat {
	out := make([]Seat, len(t.seats))
	copy(out, t.seats)

	return out
}

// Occupants returns the occupant names in seat order, skipping free seats.
func (t *Table) Occupants() []string {
	out := make([]string, 0, len(t.seats)-t.free)
	for _, s := range t.seats {
		if s.Occupied() {
			out = append(out, s.Occupant)
		}
	}

	return out
}

// Place seats name on the lowest-index free seat and returns that seat.
//
// Errors: ErrEmptyName, ErrTableFull.
//
// Complexity: amortized O(1) while the table is filled front to back.
func (t *Table) Place(name string) (Seat, error) {
	if name == "" {
		return Seat{}, ErrEmptyName
	}
	if t.free == 0 {
		return Seat{}, fmt.Errorf("%w: %s", ErrTableFull, t.Label())
	}

	for t.seats[t.next].Occupied() {
		t.next++
	}
	i := t.next
	if err := t.PlaceAt(i+1, name); err != nil {
		return Seat{}, err
	}

	return t.seats[i], nil
}

// PlaceAll seats names in order on the free seats, lowest index first.
// Nothing is placed unless the whole batch fits.
//
// Errors: ErrEmptyName, ErrNotEnoughSeats.
func (t *Table) PlaceAll(names []string) error {
	if len(names) > t.free {
		return fmt.Errorf("%w: %s has %d, need %d", ErrNotEnoughSeats, t.Label(), t.free, len(names))
	}
	for _, name := range names {
		if name == "" {
			return ErrEmptyName
		}
	}
	for _, name := range names {
		if _, err := t.Place(name); err != nil {
			return err
		}
	}

	return nil
}

// PlaceAt seats name at the 1-based index. An occupied seat is never
// overwritten; the attempt is reported as *OccupiedError.
//
// Errors: ErrEmptyName, ErrSeatIndex, *OccupiedError (ErrSeatOccupied).
func (t *Table) PlaceAt(index int, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if index < 1 || index > len(t.seats) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrSeatIndex, index, len(t.seats))
	}

	s := &t.seats[index-1]
	if s.Occupied() {
		return &OccupiedError{TableID: t.id, Index: index, Occupant: s.Occupant, Incoming: name}
	}
	s.Occupant = name
	t.free--

	return nil
}

// Vacate frees the seat at the 1-based index and returns its former
// occupant, or "" if it was already free.
func (t *Table) Vacate(index int) (string, error) {
	if index < 1 || index > len(t.seats) {
		return "", fmt.Errorf("%w: %d not in [1, %d]", ErrSeatIndex, index, len(t.seats))
	}

	s := &t.seats[index-1]
	name := s.Occupant
	if name == "" {
		return "", nil
	}
	s.Occupant = ""
	t.free++
	if index-1 < t.next {
		t.next = index - 1
	}

	return name, nil
}

func (t *Table) String() string {
	parts := make([]string, len(t.seats))
	for i, s := range t.seats {
		parts[i] = s.String()
	}

	return fmt.Sprintf("%s(capacity=%d, free=%d) [%s]", t.Label(), len(t.seats), t.free, strings.Join(parts, "; "))
}
