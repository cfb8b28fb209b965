package allocate

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/seatplan/partition"
	"github.com/katalvlaran/seatplan/seating"
)

// Layout bounds. Every table and seat is materialized, so larger layouts
// are rejected before anything is allocated.
const (
	MaxTables = 1 << 16
	MaxSeats  = 1 << 20
)

var (
	// ErrInvalidArgument indicates numTables or capacity outside
	// 1..MaxTables / 1..MaxSeats, or numTables*capacity > MaxSeats.
	ErrInvalidArgument = errors.New("allocate: invalid argument")

	// ErrTooManyGroups indicates more groups than tables.
	ErrTooManyGroups = errors.New("allocate: more groups than tables")

	// ErrGroupExceedsCapacity indicates a group larger than a table.
	ErrGroupExceedsCapacity = errors.New("allocate: group exceeds table capacity")

	// ErrCapacityExceeded indicates more people than seats overall.
	ErrCapacityExceeded = errors.New("allocate: people exceed total seating capacity")

	// ErrInvalidGroup indicates an empty group, an empty name or a name that
	// appears more than once across groups.
	ErrInvalidGroup = errors.New("allocate: invalid group")

	// ErrInternal indicates a broken allocator invariant (e.g. a seat
	// double-assignment). It is a defect, not an input problem.
	ErrInternal = errors.New("allocate: internal consistency error")
)

// Allocate seats every group at its own table and returns the full plan,
// covering all numTables tables whether occupied or not.
//
// On success every input name occupies exactly one seat and the number of
// occupied tables equals len(groups). On failure no plan is returned.
//
// Errors: see package doc.
func Allocate(groups []partition.Group, numTables, capacity int, rng RandomSource) (*seating.Plan, error) {
	if err := check(groups, numTables, capacity); err != nil {
		return nil, err
	}

	tables := make([]*seating.Table, numTables)
	for i := range tables {
		t, err := seating.NewTable(i+1, capacity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		tables[i] = t
	}

	perm := permutation(numTables, rng)
	for i, g := range groups {
		t := tables[perm[i]]
		for _, name := range g {
			if _, err := t.Place(name); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInternal, err)
			}
		}
	}

	return seating.NewPlan(tables), nil
}

// check validates the allocation request without touching any table.
func check(groups []partition.Group, numTables, capacity int) error {
	if numTables < 1 {
		return fmt.Errorf("%w: numTables %d", ErrInvalidArgument, numTables)
	}
	if capacity < 1 {
		return fmt.Errorf("%w: capacity %d", ErrInvalidArgument, capacity)
	}
	if numTables > MaxTables {
		return fmt.Errorf("%w: numTables %d exceeds %d", ErrInvalidArgument, numTables, MaxTables)
	}
	if capacity > MaxSeats/numTables {
		return fmt.Errorf("%w: %d tables of %d seats exceed %d seats",
			ErrInvalidArgument, numTables, capacity, MaxSeats)
	}

	total := lo.SumBy(groups, func(g partition.Group) int { return len(g) })
	if total > numTables*capacity {
		return fmt.Errorf("%w: %d people, %d tables of %d seats",
			ErrCapacityExceeded, total, numTables, capacity)
	}
	if len(groups) > numTables {
		return fmt.Errorf("%w: %d groups, %d tables", ErrTooManyGroups, len(groups), numTables)
	}
	for i, g := range groups {
		if len(g) > capacity {
			return fmt.Errorf("%w: group %d has %d members, capacity %d",
				ErrGroupExceedsCapacity, i, len(g), capacity)
		}
		if len(g) == 0 {
			return fmt.Errorf("%w: group %d is empty", ErrInvalidGroup, i)
		}
		if lo.Contains(g, "") {
			return fmt.Errorf("%w: group %d has an empty name", ErrInvalidGroup, i)
		}
	}

	if dups := lo.FindDuplicates(lo.Flatten(groups)); len(dups) > 0 {
		return fmt.Errorf("%w: %q appears more than once", ErrInvalidGroup, dups[0])
	}

	return nil
}
