package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/katalvlaran/seatplan/allocate"
	"github.com/katalvlaran/seatplan/partition"
	"github.com/katalvlaran/seatplan/seating"
)

// Engine runs the partition → allocation pipeline with fixed options.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	opts Options
	log  *slog.Logger
}

// New returns an Engine configured by opts on top of DefaultOptions.
func New(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	log := o.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Engine{opts: o, log: log}
}

// Run is New(opts...).Run(ctx, req).
func Run(ctx context.Context, req Request, opts ...Option) (*seating.Plan, error) {
	return New(opts...).Run(ctx, req)
}

// Run seats req.People and returns the plan, or a *Failure.
//
// The table count is ⌈len(People)/Capacity⌉ unless req.Tables is set, in
// which case req.Tables tables are laid out and the surplus stays empty.
// ctx cancels the partition search; the allocation step is not interruptible.
func (e *Engine) Run(ctx context.Context, req Request) (*seating.Plan, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := e.log.With("run_id", uuid.NewString())
	start := time.Now()

	plan, err := e.run(ctx, log, req)
	if err != nil {
		kind := KindOf(err)
		level := slog.LevelWarn
		if !kind.UserFacing() {
			level = slog.LevelError
		}
		log.Log(ctx, level, "seating run failed",
			"kind", kind.String(), "error", err, "elapsed", time.Since(start))

		return nil, err
	}

	log.Info("seating run complete",
		"people", len(req.People),
		"tables", plan.Len(),
		"occupied_tables", plan.OccupiedTables(),
		"elapsed", time.Since(start))

	return plan, nil
}

func (e *Engine) run(ctx context.Context, log *slog.Logger, req Request) (*seating.Plan, error) {
	tables, err := precheck(req)
	if err != nil {
		return nil, err
	}
	log.Debug("request accepted",
		"people", len(req.People),
		"together", len(req.Together),
		"apart", len(req.Apart),
		"capacity", req.Capacity,
		"tables", tables)

	cs := partition.Constraints(req.Together, req.Apart)
	res, err := partition.Partition(req.People, cs, req.Capacity,
		partition.WithContext(ctx),
		partition.WithTimeLimit(e.opts.TimeLimit),
		partition.WithMaxNodes(e.opts.MaxNodes),
	)
	log.Debug("partition finished",
		"blocks", res.Stats.Blocks,
		"conflicts", res.Stats.Conflicts,
		"nodes", res.Stats.Nodes,
		"elapsed", res.Stats.Elapsed)
	if err != nil {
		return nil, fail(err)
	}

	if err := partition.Verify(req.People, cs, req.Capacity, res.Groups); err != nil {
		return nil, &Failure{Kind: KindInternal, Err: err}
	}

	var src allocate.RandomSource
	if e.opts.NewSource != nil {
		src = e.opts.NewSource()
	}
	plan, err := allocate.Allocate(res.Groups, tables, req.Capacity, src)
	if err != nil {
		return nil, fail(err)
	}

	return plan, nil
}

// precheck validates what the partition stage does not see and returns the
// table count for the run. Tables beyond one per person could never be
// occupied and are rejected, as are layouts above allocate.MaxSeats.
func precheck(req Request) (int, error) {
	invalid := func(err error) (int, error) {
		return 0, &Failure{Kind: KindValidation, Err: err}
	}
	if req.Capacity < 1 {
		return invalid(fmt.Errorf("%w: got %d", partition.ErrInvalidCapacity, req.Capacity))
	}
	if req.Tables < 0 {
		return invalid(fmt.Errorf("%w: tables %d", ErrInvalidRequest, req.Tables))
	}
	if dups := lo.FindDuplicates(req.People); len(dups) > 0 {
		return invalid(fmt.Errorf("%w: %q", partition.ErrDuplicateName, dups))
	}

	groups := partition.GroupCount(len(req.People), req.Capacity)
	if limit := max(groups, len(req.People)); req.Tables > limit {
		return invalid(fmt.Errorf("%w: %d tables for %d people", ErrInvalidRequest, req.Tables, len(req.People)))
	}
	tables := max(groups, req.Tables)
	if tables > 0 && req.Capacity > allocate.MaxSeats/tables {
		return invalid(fmt.Errorf("%w: %d tables of %d seats exceed %d seats",
			ErrInvalidRequest, tables, req.Capacity, allocate.MaxSeats))
	}

	if req.Tables > 0 && len(req.People) > req.Tables*req.Capacity {
		return 0, &Failure{Kind: KindCapacityExceeded, Err: fmt.Errorf("%w: %d people, %d tables of %d seats",
			allocate.ErrCapacityExceeded, len(req.People), req.Tables, req.Capacity)}
	}

	return tables, nil
}

// fail wraps a stage error into a *Failure. Order matters: ErrTimedOut is
// also ErrInfeasible.
func fail(err error) *Failure {
	kind := KindInternal
	switch {
	case errors.Is(err, partition.ErrTimedOut):
		kind = KindTimedOut
	case errors.Is(err, partition.ErrInfeasible):
		kind = KindInfeasible
	case errors.Is(err, partition.ErrConstraintConflict):
		kind = KindConstraintConflict
	case errors.Is(err, partition.ErrValidation), errors.Is(err, allocate.ErrInvalidArgument):
		kind = KindValidation
	case errors.Is(err, allocate.ErrTooManyGroups):
		kind = KindTooManyGroups
	case errors.Is(err, allocate.ErrGroupExceedsCapacity):
		kind = KindGroupExceedsCapacity
	case errors.Is(err, allocate.ErrCapacityExceeded):
		kind = KindCapacityExceeded
	}

	return &Failure{Kind: kind, Err: err}
}
