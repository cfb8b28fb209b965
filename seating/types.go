package seating

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidTableID is returned when a table id is not positive.
	ErrInvalidTableID = errors.New("seating: table id must be positive")

	// ErrInvalidCapacity is returned when a table is built with fewer than one seat.
	ErrInvalidCapacity = errors.New("seating: table capacity must be at least 1")

	// ErrSeatIndex is returned when a seat index is outside [1, capacity].
	ErrSeatIndex = errors.New("seating: seat index out of range")

	// ErrEmptyName is returned when an occupant name is empty.
	ErrEmptyName = errors.New("seating: occupant name is empty")

	// ErrTableFull is returned by Place when no free seat is left.
	ErrTableFull = errors.New("seating: table is full")

	// ErrNotEnoughSeats is returned by PlaceAll when the batch does not fit.
	ErrNotEnoughSeats = errors.New("seating: not enough free seats")

	// ErrSeatOccupied is the sentinel behind *OccupiedError.
	ErrSeatOccupied = errors.New("seating: seat already occupied")
)

// OccupiedError reports an attempt to overwrite an occupied seat.
type OccupiedError struct {
	TableID  int
	Index    int
	Occupant string
	Incoming string
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("seating: seat (%d, %d) is already occupied by %q, refusing %q",
		e.TableID, e.Index, e.Occupant, e.Incoming)
}

// Is lets errors.Is(err, ErrSeatOccupied) match.
func (e *OccupiedError) Is(target error) bool { return target == ErrSeatOccupied }

// Seat is the smallest unit of occupancy.
//
// Seat values are copies; mutating one does not touch the Table it came from.
type Seat struct {
	// TableID is the id of the owning table.
	TableID int

	// Index is the 1-based position of the seat at its table.
	Index int

	// Occupant is the person sitting here, or "" when the seat is free.
	Occupant string
}

// Occupied reports whether someone sits on s.
func (s Seat) Occupied() bool { return s.Occupant != "" }

// Label returns the display label of the seat, e.g. "Seat_3".
func (s Seat) Label() string { return SeatLabel(s.Index) }

func (s Seat) String() string {
	if !s.Occupied() {
		return fmt.Sprintf("Seat(%d, %d): unoccupied", s.TableID, s.Index)
	}

	return fmt.Sprintf("Seat(%d, %d): occupied by %s", s.TableID, s.Index, s.Occupant)
}

// SeatLabel formats a 1-based seat index as "Seat_<index>".
func SeatLabel(index int) string { return "Seat_" + strconv.Itoa(index) }

// TableLabel formats a table id as "Table_<id>".
func TableLabel(id int) string { return "Table_" + strconv.Itoa(id) }
