package engine_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seatplan/allocate"
	"github.com/katalvlaran/seatplan/engine"
	"github.com/katalvlaran/seatplan/partition"
	"github.com/katalvlaran/seatplan/seating"
)

// seated returns every occupant in the plan, sorted.
func seated(p *seating.Plan) []string {
	var out []string
	for _, tv := range p.Tables() {
		out = append(out, tv.Occupants()...)
	}
	sort.Strings(out)

	return out
}

// tableSizes returns the occupant count of every occupied table, sorted.
func tableSizes(p *seating.Plan) []int {
	var out []int
	for _, tv := range p.Tables() {
		if n := len(tv.Occupants()); n > 0 {
			out = append(out, n)
		}
	}
	sort.Ints(out)

	return out
}

func TestRun_NoConstraints(t *testing.T) {
	req := engine.Request{People: []string{"A", "B", "C", "D", "E"}, Capacity: 4}
	plan, err := engine.Run(context.Background(), req, engine.WithSeed(3))
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Len())
	assert.Equal(t, 2, plan.OccupiedTables())
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, seated(plan))
	for _, n := range tableSizes(plan) {
		assert.LessOrEqual(t, n, 4)
	}
}

func TestRun_TogetherPairColocated(t *testing.T) {
	req := engine.Request{
		People:   []string{"A", "B", "C", "D"},
		Together: [][2]string{{"A", "B"}},
		Capacity: 3,
	}
	for seed := int64(1); seed <= 20; seed++ {
		plan, err := engine.Run(context.Background(), req, engine.WithSeed(seed))
		require.NoError(t, err)

		a, ok := plan.Locate("A")
		require.True(t, ok)
		b, ok := plan.Locate("B")
		require.True(t, ok)
		assert.Equal(t, a.TableID, b.TableID, "seed %d", seed)
	}
}

func TestRun_PairBothKinds(t *testing.T) {
	req := engine.Request{
		People:   []string{"A", "B"},
		Together: [][2]string{{"A", "B"}},
		Apart:    [][2]string{{"B", "A"}},
		Capacity: 2,
	}
	plan, err := engine.Run(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, engine.KindConstraintConflict, engine.KindOf(err))
	assert.ErrorIs(t, err, partition.ErrConstraintConflict)
}

func TestRun_ThreePeopleCapacityTwo(t *testing.T) {
	req := engine.Request{People: []string{"A", "B", "C"}, Capacity: 2}
	plan, err := engine.Run(context.Background(), req, engine.WithSeed(9))
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Len())
	assert.Equal(t, []int{1, 2}, tableSizes(plan))
}

func TestRun_ExplicitTablesTooFew(t *testing.T) {
	req := engine.Request{People: []string{"A", "B", "C"}, Capacity: 2, Tables: 1}
	_, err := engine.Run(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, engine.KindCapacityExceeded, engine.KindOf(err))
	assert.ErrorIs(t, err, allocate.ErrCapacityExceeded)
}

func TestRun_SlackTables(t *testing.T) {
	req := engine.Request{People: []string{"A", "B", "C"}, Capacity: 2, Tables: 3}
	plan, err := engine.Run(context.Background(), req, engine.WithSeed(5))
	require.NoError(t, err)

	assert.Equal(t, 3, plan.Len())
	assert.Equal(t, 2, plan.OccupiedTables())
	assert.Equal(t, 3, plan.Occupied())
}

func TestRun_SeedIsReproducible(t *testing.T) {
	req := engine.Request{
		People:   []string{"Ann", "Bob", "Cid", "Dee", "Eve", "Fay", "Gus"},
		Together: [][2]string{{"Ann", "Bob"}},
		Apart:    [][2]string{{"Ann", "Cid"}, {"Dee", "Eve"}},
		Capacity: 3,
		Tables:   5,
	}
	e := engine.New(engine.WithSeed(42))

	first, err := e.Run(context.Background(), req)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Run(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first.String(), again.String())
	}
}

func TestRun_ConstraintsHonored(t *testing.T) {
	req := engine.Request{
		People:   []string{"Ann", "Bob", "Cid", "Dee", "Eve", "Fay"},
		Together: [][2]string{{"Ann", "Bob"}, {"Bob", "Cid"}},
		Apart:    [][2]string{{"Ann", "Dee"}, {"Eve", "Fay"}},
		Capacity: 3,
	}
	plan, err := engine.Run(context.Background(), req, engine.WithSeed(11))
	require.NoError(t, err)

	table := func(name string) int {
		s, ok := plan.Locate(name)
		require.True(t, ok, name)
		return s.TableID
	}
	assert.Equal(t, table("Ann"), table("Bob"))
	assert.Equal(t, table("Bob"), table("Cid"))
	assert.NotEqual(t, table("Ann"), table("Dee"))
	assert.NotEqual(t, table("Eve"), table("Fay"))
}

func TestRun_FailureKinds(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name  string
		ctx   context.Context
		req   engine.Request
		opts  []engine.Option
		kind  engine.FailureKind
		cause error
	}{
		{
			name:  "zero capacity",
			req:   engine.Request{People: []string{"A"}, Capacity: 0},
			kind:  engine.KindValidation,
			cause: partition.ErrInvalidCapacity,
		},
		{
			name:  "negative tables",
			req:   engine.Request{People: []string{"A"}, Capacity: 1, Tables: -1},
			kind:  engine.KindValidation,
			cause: engine.ErrInvalidRequest,
		},
		{
			name:  "duplicate person",
			req:   engine.Request{People: []string{"A", "B", "A"}, Capacity: 2},
			kind:  engine.KindValidation,
			cause: partition.ErrDuplicateName,
		},
		{
			name:  "no people",
			req:   engine.Request{Capacity: 2},
			kind:  engine.KindValidation,
			cause: partition.ErrNoPeople,
		},
		{
			name:  "unknown name",
			req:   engine.Request{People: []string{"A", "B"}, Apart: [][2]string{{"A", "Z"}}, Capacity: 2},
			kind:  engine.KindValidation,
			cause: partition.ErrUnknownName,
		},
		{
			name: "transitive conflict",
			req: engine.Request{
				People:   []string{"A", "B", "C"},
				Together: [][2]string{{"A", "B"}, {"B", "C"}},
				Apart:    [][2]string{{"A", "C"}},
				Capacity: 3,
			},
			kind:  engine.KindConstraintConflict,
			cause: partition.ErrConstraintConflict,
		},
		{
			name: "apart triangle in two groups",
			req: engine.Request{
				People:   []string{"A", "B", "C", "D"},
				Apart:    [][2]string{{"A", "B"}, {"B", "C"}, {"A", "C"}},
				Capacity: 2,
			},
			kind:  engine.KindInfeasible,
			cause: partition.ErrInfeasible,
		},
		{
			name:  "node budget",
			req:   engine.Request{People: []string{"A", "B", "C", "D"}, Capacity: 2},
			opts:  []engine.Option{engine.WithMaxNodes(1)},
			kind:  engine.KindTimedOut,
			cause: partition.ErrTimedOut,
		},
		{
			name:  "cancelled context",
			ctx:   cancelled,
			req:   engine.Request{People: []string{"A", "B", "C", "D"}, Capacity: 2},
			kind:  engine.KindTimedOut,
			cause: context.Canceled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx
			if ctx == nil {
				ctx = context.Background()
			}
			plan, err := engine.Run(ctx, tt.req, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, plan)

			var f *engine.Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, tt.kind, f.Kind)
			assert.ErrorIs(t, err, tt.cause)
			assert.True(t, f.Kind.UserFacing())
		})
	}
}

func TestRun_LogsRunID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	req := engine.Request{People: []string{"A", "B", "C"}, Capacity: 2}
	_, err := engine.Run(context.Background(), req, engine.WithLogger(log), engine.WithSeed(1))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"run_id"`)
	assert.Contains(t, out, "partition finished")
	assert.Contains(t, out, "seating run complete")

	buf.Reset()
	_, err = engine.Run(context.Background(), engine.Request{Capacity: 2}, engine.WithLogger(log))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "seating run failed")
	assert.Contains(t, buf.String(), `"kind":"validation"`)
}

func TestRun_CustomRandomSource(t *testing.T) {
	calls := 0
	src := func() allocate.RandomSource {
		calls++
		return allocate.NewSeededSource(int64(calls))
	}
	e := engine.New(engine.WithRandomSource(src))

	req := engine.Request{People: []string{"A", "B"}, Capacity: 1}
	for i := 0; i < 3; i++ {
		_, err := e.Run(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestRun_NilRandomSource(t *testing.T) {
	req := engine.Request{People: []string{"A", "B", "C"}, Capacity: 2}

	nilRand := engine.WithRandomSource(func() allocate.RandomSource { return (*rand.Rand)(nil) })
	plan, err := engine.Run(context.Background(), req, nilRand)
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Occupied())

	plan, err = engine.Run(context.Background(), req, engine.WithRandomSource(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Occupied())
}

func TestRun_TableBounds(t *testing.T) {
	tests := []struct {
		name string
		req  engine.Request
	}{
		{"huge table count", engine.Request{People: []string{"A", "B"}, Capacity: 2, Tables: 1 << 60}},
		{"more tables than people", engine.Request{People: []string{"A", "B"}, Capacity: 2, Tables: 3}},
		{"huge capacity", engine.Request{People: []string{"A", "B"}, Capacity: 1 << 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := engine.Run(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, plan)
			assert.Equal(t, engine.KindValidation, engine.KindOf(err))
			assert.ErrorIs(t, err, engine.ErrInvalidRequest)
		})
	}

	// One table per person is the largest accepted layout.
	plan, err := engine.Run(context.Background(),
		engine.Request{People: []string{"A", "B"}, Capacity: 2, Tables: 2}, engine.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Len())
}

func TestFailure(t *testing.T) {
	f := &engine.Failure{Kind: engine.KindInfeasible, Err: partition.ErrInfeasible}
	assert.Equal(t, "engine: infeasible: partition: no feasible grouping", f.Error())
	assert.Equal(t, partition.ErrInfeasible, errors.Unwrap(f))

	assert.Equal(t, engine.FailureKind(0), engine.KindOf(nil))
	assert.Equal(t, engine.FailureKind(0), engine.KindOf(partition.ErrInfeasible))
	assert.Equal(t, "failure_kind(99)", engine.FailureKind(99).String())
	assert.False(t, engine.KindInternal.UserFacing())
	assert.Equal(t, "group_exceeds_capacity", engine.KindGroupExceedsCapacity.String())
}
