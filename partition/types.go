package partition

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation is the parent of every malformed-input error below.
	ErrValidation = errors.New("partition: invalid input")

	// ErrInvalidCapacity indicates capacity < 1.
	ErrInvalidCapacity = fmt.Errorf("%w: capacity must be at least 1", ErrValidation)

	// ErrNoPeople indicates an empty people list.
	ErrNoPeople = fmt.Errorf("%w: no people", ErrValidation)

	// ErrEmptyName indicates an empty person name.
	ErrEmptyName = fmt.Errorf("%w: empty name", ErrValidation)

	// ErrDuplicateName indicates the same name listed twice.
	ErrDuplicateName = fmt.Errorf("%w: duplicate name", ErrValidation)

	// ErrUnknownName indicates a constraint naming someone not in people.
	ErrUnknownName = fmt.Errorf("%w: constraint references unknown name", ErrValidation)

	// ErrSelfPair indicates a constraint pairing a name with itself.
	ErrSelfPair = fmt.Errorf("%w: constraint pairs a name with itself", ErrValidation)

	// ErrInvalidKind indicates a Constraint whose Kind is neither Together nor Apart.
	ErrInvalidKind = fmt.Errorf("%w: unknown constraint kind", ErrValidation)

	// ErrConstraintConflict indicates a structural contradiction: two names
	// that Together constraints (directly or transitively) force into one
	// group are also required Apart.
	ErrConstraintConflict = errors.New("partition: constraint conflict")

	// ErrInfeasible indicates that no grouping satisfies the constraints.
	ErrInfeasible = errors.New("partition: no feasible grouping")

	// ErrTimedOut indicates that the search budget ran out before an answer
	// was found. errors.Is(ErrTimedOut, ErrInfeasible) is true.
	ErrTimedOut = fmt.Errorf("%w: search budget exhausted", ErrInfeasible)

	// ErrBrokenGrouping is returned by Verify when groups break a law.
	ErrBrokenGrouping = errors.New("partition: grouping violates constraints")
)

// Kind tags a Constraint.
type Kind uint8

const (
	// Together: both names must share a group.
	Together Kind = iota + 1
	// Apart: the names must be in different groups.
	Apart
)

func (k Kind) String() string {
	switch k {
	case Together:
		return "together"
	case Apart:
		return "apart"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Constraint is an unordered pair of names tagged Together or Apart.
// Build it with NewTogether / NewApart, which store the pair with A ≤ B.
type Constraint struct {
	Kind Kind
	A, B string
}

// NewTogether returns a Together constraint on {a, b}.
func NewTogether(a, b string) Constraint { return newConstraint(Together, a, b) }

// NewApart returns an Apart constraint on {a, b}.
func NewApart(a, b string) Constraint { return newConstraint(Apart, a, b) }

func newConstraint(k Kind, a, b string) Constraint {
	if b < a {
		a, b = b, a
	}

	return Constraint{Kind: k, A: a, B: b}
}

// Pair returns the names in canonical order.
func (c Constraint) Pair() [2]string {
	if c.B < c.A {
		return [2]string{c.B, c.A}
	}

	return [2]string{c.A, c.B}
}

func (c Constraint) String() string {
	p := c.Pair()

	return fmt.Sprintf("%s(%s, %s)", c.Kind, p[0], p[1])
}

// Constraints converts raw pair lists into tagged constraints, Together
// first, each list in its given order.
func Constraints(together, apart [][2]string) []Constraint {
	out := make([]Constraint, 0, len(together)+len(apart))
	for _, p := range together {
		out = append(out, NewTogether(p[0], p[1]))
	}
	for _, p := range apart {
		out = append(out, NewApart(p[0], p[1]))
	}

	return out
}

// Group is one cell of a partition: 1..capacity names. Groups returned by
// Partition are never retained by this package.
type Group []string

// Stats describes the work done by one Partition call.
type Stats struct {
	// Blocks is the number of rigid together-blocks.
	Blocks int
	// Conflicts is the number of distinct conflicting block pairs.
	Conflicts int
	// Nodes is the number of search nodes expanded.
	Nodes int
	// Elapsed is the wall time spent in the search step.
	Elapsed time.Duration
}

// Result holds the outcome of Partition.
type Result struct {
	// Groups has exactly ⌈n/capacity⌉ entries, ordered by label.
	Groups []Group
	Stats  Stats
}

// DefaultTimeLimit bounds the search when callers do not choose a limit.
const DefaultTimeLimit = 5 * time.Second

// Option configures Partition.
type Option func(*Options)

// Options holds the search budget.
type Options struct {
	// Ctx aborts the search when cancelled; defaults to context.Background().
	Ctx context.Context

	// TimeLimit bounds wall time; ≤ 0 disables the deadline.
	TimeLimit time.Duration

	// MaxNodes bounds the number of search nodes; ≤ 0 disables the bound.
	MaxNodes int
}

// DefaultOptions returns Options with a background context,
// DefaultTimeLimit and no node bound.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		TimeLimit: DefaultTimeLimit,
		MaxNodes:  0,
	}
}

// WithContext sets the cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Ctx = ctx }
}

// WithTimeLimit sets the wall-time budget; d ≤ 0 disables it.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithMaxNodes sets the node budget; n ≤ 0 disables it.
func WithMaxNodes(n int) Option {
	return func(o *Options) { o.MaxNodes = n }
}

// GroupCount returns ⌈people/capacity⌉, the number of groups (and tables)
// a run needs. It returns 0 when capacity < 1 or people < 1.
func GroupCount(people, capacity int) int {
	if capacity < 1 || people < 1 {
		return 0
	}

	return (people + capacity - 1) / capacity
}
