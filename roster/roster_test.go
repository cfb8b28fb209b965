package roster_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/seatplan/allocate"
	"github.com/katalvlaran/seatplan/roster"
	"github.com/katalvlaran/seatplan/seating"
)

const sampleCSV = `name,compatible,incompatible
Ann,Ann:Bob,Cid/Dee
Bob,,
 Cid ,Dee : Eve,
Dee,,Ann/ Eve
Eve,,
`

func TestLoadCSV(t *testing.T) {
	rec, err := roster.LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ann", "Bob", "Cid", "Dee", "Eve"}, rec.People)
	assert.Equal(t, [][2]string{{"Ann", "Bob"}, {"Dee", "Eve"}}, rec.Together)
	assert.Equal(t, [][2]string{{"Cid", "Dee"}, {"Ann", "Eve"}}, rec.Apart)
	assert.Zero(t, rec.Capacity)
	assert.Zero(t, rec.Tables)
}

func TestLoadCSV_ByteOrderMark(t *testing.T) {
	rec, err := roster.LoadCSV(strings.NewReader("\ufeffName,Compatible,Incompatible\nAnn,,\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, rec.People)
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong header", "person,compatible,incompatible\nAnn,,\n"},
		{"short header", "name,compatible\nAnn,\n"},
		{"short row", "name,compatible,incompatible\nAnn,\n"},
		{"together without colon", "name,compatible,incompatible\nAnn,Ann-Bob,\nBob,,\n"},
		{"apart with three names", "name,compatible,incompatible\nAnn,,Ann/Bob/Cid\n"},
		{"blank pair member", "name,compatible,incompatible\nAnn,Ann: ,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := roster.LoadCSV(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, roster.ErrInvalidFormat)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	in := `
people: [" Ann", Bob, Cid, ""]
together:
  - [Ann, " Bob "]
apart:
  - [Bob, Cid]
capacity: 2
tables: 3
`
	rec, err := roster.LoadYAML(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ann", "Bob", "Cid"}, rec.People)
	assert.Equal(t, [][2]string{{"Ann", "Bob"}}, rec.Together)
	assert.Equal(t, [][2]string{{"Bob", "Cid"}}, rec.Apart)
	assert.Equal(t, 2, rec.Capacity)
	assert.Equal(t, 3, rec.Tables)
	require.NoError(t, rec.Validate())
}

func TestLoadYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"unknown key", "people: [Ann]\nseats: 2\n"},
		{"pair of three", "people: [Ann, Bob, Cid]\ntogether: [[Ann, Bob, Cid]]\n"},
		{"not a mapping", "- Ann\n- Bob\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := roster.LoadYAML(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, roster.ErrInvalidFormat)
		})
	}
}

func TestRecord_Validate(t *testing.T) {
	valid := func() roster.Record {
		return roster.Record{
			People:   []string{"Ann", "Bob"},
			Together: [][2]string{{"Ann", "Bob"}},
			Capacity: 2,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*roster.Record)
	}{
		{"no people", func(r *roster.Record) { r.People = nil }},
		{"duplicate person", func(r *roster.Record) { r.People = []string{"Ann", "Ann"} }},
		{"blank person", func(r *roster.Record) { r.People = []string{"Ann", ""} }},
		{"blank pair member", func(r *roster.Record) { r.Apart = [][2]string{{"Ann", ""}} }},
		{"zero capacity", func(r *roster.Record) { r.Capacity = 0 }},
		{"negative tables", func(r *roster.Record) { r.Tables = -2 }},
		{"more tables than people", func(r *roster.Record) { r.Tables = 3 }},
		{"huge tables", func(r *roster.Record) { r.Tables = 1 << 40 }},
		{"huge capacity", func(r *roster.Record) { r.Capacity = allocate.MaxSeats + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), roster.ErrInvalidRecord)
		})
	}
}

func TestRecord_LimitsMatchAllocator(t *testing.T) {
	people := make([]string, allocate.MaxTables)
	for i := range people {
		people[i] = fmt.Sprintf("P%d", i)
	}
	r := roster.Record{People: people, Capacity: 1, Tables: allocate.MaxTables}
	require.NoError(t, r.Validate())

	r.Tables++
	assert.ErrorIs(t, r.Validate(), roster.ErrInvalidRecord)

	r = roster.Record{People: []string{"Ann"}, Capacity: allocate.MaxSeats}
	require.NoError(t, r.Validate())
}

func TestRecord_Request(t *testing.T) {
	r := roster.Record{
		People:   []string{"Ann", "Bob"},
		Apart:    [][2]string{{"Ann", "Bob"}},
		Capacity: 1,
		Tables:   4,
	}
	req := r.Request()
	assert.Equal(t, r.People, req.People)
	assert.Equal(t, r.Apart, req.Apart)
	assert.Empty(t, req.Together)
	assert.Equal(t, 1, req.Capacity)
	assert.Equal(t, 4, req.Tables)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "guests.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o600))
	ymlPath := filepath.Join(dir, "guests.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("people: [Ann]\ncapacity: 1\n"), 0o600))

	rec, err := roster.LoadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, rec.People, 5)

	rec, err = roster.LoadFile(ymlPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, rec.People)

	_, err = roster.LoadFile(filepath.Join(dir, "guests.xlsx"))
	assert.ErrorIs(t, err, roster.ErrUnsupportedFormat)

	_, err = roster.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("nope\n"), 0o600))
	_, err = roster.LoadFile(bad)
	assert.ErrorIs(t, err, roster.ErrInvalidFormat)
	assert.Contains(t, err.Error(), bad)
}

func TestPlanPath(t *testing.T) {
	assert.Equal(t, "in/guests.plan.csv", roster.PlanPath("in/guests.yaml"))
	assert.Equal(t, "guests.plan.csv", roster.PlanPath("guests.csv"))
	assert.Equal(t, "guests.plan.csv", roster.PlanPath("guests"))
}

func TestWriteCSV(t *testing.T) {
	t1, err := seating.NewTable(1, 3)
	require.NoError(t, err)
	require.NoError(t, t1.PlaceAll([]string{"Ann", "Bob"}))
	t2, err := seating.NewTable(2, 3)
	require.NoError(t, err)
	require.NoError(t, t2.PlaceAt(2, "Cid"))

	var buf bytes.Buffer
	require.NoError(t, roster.WriteCSV(&buf, seating.NewPlan([]*seating.Table{t2, t1})))

	want := "Table_1,Table_2\nAnn,\nBob,Cid\n,\n"
	assert.Equal(t, want, buf.String())
}
