package partition

import "fmt"

// instance is a validated problem with names replaced by their input index.
type instance struct {
	names    []string
	index    map[string]int
	together [][2]int
	apart    [][2]int
	capacity int
}

// newInstance validates the raw input and interns names.
//
// Checks, in order: capacity, people non-empty, names non-empty and unique,
// each constraint (kind, endpoints known and distinct), and finally that no
// pair is listed both Together and Apart (ErrConstraintConflict).
// Duplicate constraints of the same kind are collapsed.
//
// Complexity: O(n + p).
func newInstance(people []string, constraints []Constraint, capacity int) (*instance, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if len(people) == 0 {
		return nil, ErrNoPeople
	}

	in := &instance{
		names:    people,
		index:    make(map[string]int, len(people)),
		capacity: capacity,
	}
	for i, name := range people {
		if name == "" {
			return nil, fmt.Errorf("%w: position %d", ErrEmptyName, i)
		}
		if _, dup := in.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		in.index[name] = i
	}

	kinds := make(map[[2]int]Kind, len(constraints))
	for _, c := range constraints {
		if c.Kind != Together && c.Kind != Apart {
			return nil, fmt.Errorf("%w: %s", ErrInvalidKind, c)
		}
		u, ok := in.index[c.A]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrUnknownName, c.A, c)
		}
		v, ok := in.index[c.B]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrUnknownName, c.B, c)
		}
		if u == v {
			return nil, fmt.Errorf("%w: %s", ErrSelfPair, c)
		}
		if v < u {
			u, v = v, u
		}

		key := [2]int{u, v}
		if prev, seen := kinds[key]; seen {
			if prev != c.Kind {
				return nil, fmt.Errorf("%w: %q and %q are listed both together and apart",
					ErrConstraintConflict, people[u], people[v])
			}
			continue
		}
		kinds[key] = c.Kind
		if c.Kind == Together {
			in.together = append(in.together, key)
		} else {
			in.apart = append(in.apart, key)
		}
	}

	return in, nil
}

// Verify checks that groups form a valid answer for the given input:
// exactly ⌈n/capacity⌉ groups of 1..capacity members covering people once,
// Together pairs co-located and Apart pairs separated.
//
// Errors: validation sentinels for malformed input, ErrBrokenGrouping with
// the first broken law otherwise.
//
// Complexity: O(n + p).
func Verify(people []string, constraints []Constraint, capacity int, groups []Group) error {
	in, err := newInstance(people, constraints, capacity)
	if err != nil {
		return err
	}

	want := GroupCount(len(people), capacity)
	if len(groups) != want {
		return fmt.Errorf("%w: %d groups, want %d", ErrBrokenGrouping, len(groups), want)
	}

	label := make([]int, len(people))
	for i := range label {
		label[i] = -1
	}
	for g, members := range groups {
		if len(members) < 1 || len(members) > capacity {
			return fmt.Errorf("%w: group %d has %d members, capacity %d",
				ErrBrokenGrouping, g, len(members), capacity)
		}
		for _, name := range members {
			i, ok := in.index[name]
			if !ok {
				return fmt.Errorf("%w: unknown member %q", ErrBrokenGrouping, name)
			}
			if label[i] >= 0 {
				return fmt.Errorf("%w: %q placed twice", ErrBrokenGrouping, name)
			}
			label[i] = g
		}
	}
	for i, l := range label {
		if l < 0 {
			return fmt.Errorf("%w: %q not placed", ErrBrokenGrouping, people[i])
		}
	}
	for _, p := range in.together {
		if label[p[0]] != label[p[1]] {
			return fmt.Errorf("%w: %q and %q must sit together",
				ErrBrokenGrouping, people[p[0]], people[p[1]])
		}
	}
	for _, p := range in.apart {
		if label[p[0]] == label[p[1]] {
			return fmt.Errorf("%w: %q and %q must sit apart",
				ErrBrokenGrouping, people[p[0]], people[p[1]])
		}
	}

	return nil
}
