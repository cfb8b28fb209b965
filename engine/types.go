package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/seatplan/allocate"
	"github.com/katalvlaran/seatplan/partition"
)

// ErrInvalidRequest is the cause of Validation failures detected by the
// engine itself (the partition stage reports its own sentinels).
var ErrInvalidRequest = errors.New("engine: invalid request")

// FailureKind classifies a failed run.
type FailureKind uint8

const (
	KindValidation FailureKind = iota + 1
	KindConstraintConflict
	KindInfeasible
	KindTimedOut
	KindTooManyGroups
	KindGroupExceedsCapacity
	KindCapacityExceeded
	KindInternal
)

var kindNames = map[FailureKind]string{
	KindValidation:           "validation",
	KindConstraintConflict:   "constraint_conflict",
	KindInfeasible:           "infeasible",
	KindTimedOut:             "timed_out",
	KindTooManyGroups:        "too_many_groups",
	KindGroupExceedsCapacity: "group_exceeds_capacity",
	KindCapacityExceeded:     "capacity_exceeded",
	KindInternal:             "internal",
}

func (k FailureKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("failure_kind(%d)", uint8(k))
}

// UserFacing reports whether the failure describes the caller's input
// rather than a defect in the core.
func (k FailureKind) UserFacing() bool { return k != KindInternal && k != 0 }

// Failure is the error type returned by Run.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("engine: %s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// KindOf returns the FailureKind carried by err, or 0 if err is not a *Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}

	return 0
}

// Request is one full input record.
type Request struct {
	// People are the distinct, non-empty names to seat.
	People []string

	// Together and Apart are unordered name pairs.
	Together [][2]string
	Apart    [][2]string

	// Capacity is the number of seats per table (≥ 1).
	Capacity int

	// Tables overrides the table count. 0 means ⌈len(People)/Capacity⌉;
	// a larger value, up to one table per person, leaves slack tables empty.
	Tables int
}

// Option configures an Engine.
type Option func(*Options)

// Options holds engine configuration.
type Options struct {
	// Logger receives run events; nil discards them.
	Logger *slog.Logger

	// TimeLimit bounds the partition search; ≤ 0 disables it.
	TimeLimit time.Duration

	// MaxNodes bounds the partition search; ≤ 0 disables it.
	MaxNodes int

	// NewSource returns a fresh random source for each run.
	NewSource func() allocate.RandomSource
}

// DefaultOptions returns a silent engine with partition.DefaultTimeLimit and
// a clock-seeded random source per run.
func DefaultOptions() Options {
	return Options{
		Logger:    nil,
		TimeLimit: partition.DefaultTimeLimit,
		MaxNodes:  0,
		NewSource: func() allocate.RandomSource { return allocate.NewSource() },
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTimeLimit sets the search wall-time budget.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithMaxNodes sets the search node budget.
func WithMaxNodes(n int) Option {
	return func(o *Options) { o.MaxNodes = n }
}

// WithSeed makes every run draw its table shuffle from a fresh source
// seeded with seed, so identical requests give identical plans.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.NewSource = func() allocate.RandomSource { return allocate.NewSeededSource(seed) }
	}
}

// WithRandomSource sets the per-run source factory. A nil factory, or one
// returning a nil source, falls back to allocate's default seeded stream.
func WithRandomSource(fn func() allocate.RandomSource) Option {
	return func(o *Options) { o.NewSource = fn }
}
