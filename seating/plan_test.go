package seating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seatplan/seating"
)

// samplePlan builds two tables of capacity 2 given in reverse id order:
// Table_2 holds Carol, Table_1 holds Alice and Bob.
func samplePlan(t *testing.T) (*seating.Plan, []*seating.Table) {
	t.Helper()
	t2 := newTable(t, 2, 2)
	require.NoError(t, t2.PlaceAll([]string{"Carol"}))
	t1 := newTable(t, 1, 2)
	require.NoError(t, t1.PlaceAll([]string{"Alice", "Bob"}))

	return seating.NewPlan([]*seating.Table{t2, t1, nil}), []*seating.Table{t1, t2}
}

func TestPlan_OrderedByTableID(t *testing.T) {
	p, _ := samplePlan(t)

	require.Equal(t, 2, p.Len())
	views := p.Tables()
	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, 2, views[1].ID)
	assert.Equal(t, []string{"Alice", "Bob"}, views[0].Occupants())
	assert.Equal(t, []string{"Carol"}, views[1].Occupants())
}

func TestPlan_IsASnapshot(t *testing.T) {
	p, tables := samplePlan(t)

	_, err := tables[1].Place("Dave")
	require.NoError(t, err)
	v, ok := p.Table(2)
	require.True(t, ok)
	assert.Equal(t, []string{"Carol"}, v.Occupants())

	// Mutating a returned view does not leak back either.
	v.Seats[0].Occupant = "Mallory"
	again, _ := p.Table(2)
	assert.Equal(t, "Carol", again.Seats[0].Occupant)
}

func TestPlan_Counts(t *testing.T) {
	p, _ := samplePlan(t)
	assert.Equal(t, 3, p.Occupied())
	assert.Equal(t, 2, p.OccupiedTables())

	empty := seating.NewPlan([]*seating.Table{newTable(t, 1, 3)})
	assert.Equal(t, 0, empty.Occupied())
	assert.Equal(t, 0, empty.OccupiedTables())
}

func TestPlan_TableMissing(t *testing.T) {
	p, _ := samplePlan(t)
	_, ok := p.Table(7)
	assert.False(t, ok)
}

func TestPlan_Locate(t *testing.T) {
	p, _ := samplePlan(t)

	s, ok := p.Locate("Bob")
	require.True(t, ok)
	assert.Equal(t, seating.Seat{TableID: 1, Index: 2, Occupant: "Bob"}, s)

	_, ok = p.Locate("Zed")
	assert.False(t, ok)
	_, ok = p.Locate("")
	assert.False(t, ok)
}

func TestPlan_Rows(t *testing.T) {
	p, _ := samplePlan(t)

	header, rows := p.Rows()
	assert.Equal(t, []string{"Table_1", "Table_2"}, header)
	assert.Equal(t, [][]string{
		{"Alice", "Carol"},
		{"Bob", ""},
	}, rows)
}

func TestPlan_Map(t *testing.T) {
	p, _ := samplePlan(t)
	assert.Equal(t, map[string]map[string]string{
		"Table_1": {"Seat_1": "Alice", "Seat_2": "Bob"},
		"Table_2": {"Seat_1": "Carol", "Seat_2": ""},
	}, p.Map())
}

func TestPlan_String(t *testing.T) {
	p, _ := samplePlan(t)
	assert.Equal(t,
		"Table_1: Seat_1: Alice, Seat_2: Bob\nTable_2: Seat_1: Carol, Seat_2: Empty",
		p.String())
}
