package seating

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// TableView is a read-only copy of one table inside a Plan.
type TableView struct {
	ID    int
	Seats []Seat
}

// Label returns "Table_<id>".
func (v TableView) Label() string { return TableLabel(v.ID) }

// Occupants returns the occupant names in seat order.
func (v TableView) Occupants() []string {
	return lo.FilterMap(v.Seats, func(s Seat, _ int) (string, bool) {
		return s.Occupant, s.Occupied()
	})
}

// Plan is the immutable result of an allocation run: every table of the run,
// ordered by id, each with its seats in index order.
type Plan struct {
	tables []TableView
}

// NewPlan snapshots tables into a Plan. Later changes to the tables are not
// visible through the Plan. Nil tables are skipped.
//
// Complexity: O(T log T + S) for T tables and S seats.
func NewPlan(tables []*Table) *Plan {
	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		if t == nil {
			continue
		}
		views = append(views, TableView{ID: t.id, Seats: t.Seats()})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })

	return &Plan{tables: views}
}

// Len returns the number of tables in the plan.
func (p *Plan) Len() int { return len(p.tables) }

// Tables returns a deep copy of every table view, ordered by id.
func (p *Plan) Tables() []TableView {
	out := make([]TableView, len(p.tables))
	for i, v := range p.tables {
		out[i] = TableView{ID: v.ID, Seats: append([]Seat(nil), v.Seats...)}
	}

	return out
}

// Table returns a copy of the table with the given id.
func (p *Plan) Table(id int) (TableView, bool) {
	i := sort.Search(len(p.tables), func(i int) bool { return p.tables[i].ID >= id })
	if i == len(p.tables) || p.tables[i].ID != id {
		return TableView{}, false
	}
	v := p.tables[i]

	return TableView{ID: v.ID, Seats: append([]Seat(nil), v.Seats...)}, true
}

// Occupied returns the number of occupied seats across all tables.
func (p *Plan) Occupied() int {
	return lo.SumBy(p.tables, func(v TableView) int {
		return lo.CountBy(v.Seats, Seat.Occupied)
	})
}

// OccupiedTables returns the number of tables with at least one occupant.
func (p *Plan) OccupiedTables() int {
	return lo.CountBy(p.tables, func(v TableView) bool {
		return lo.SomeBy(v.Seats, Seat.Occupied)
	})
}

// Locate returns the seat held by name.
func (p *Plan) Locate(name string) (Seat, bool) {
	if name == "" {
		return Seat{}, false
	}
	for _, v := range p.tables {
		for _, s := range v.Seats {
			if s.Occupant == name {
				return s, true
			}
		}
	}

	return Seat{}, false
}

// Rows renders the plan as a grid: header holds one "Table_<id>" label per
// table, and row i holds the occupant of seat i+1 at every table ("" when the
// seat is free or the table has fewer seats).
func (p *Plan) Rows() (header []string, rows [][]string) {
	header = make([]string, len(p.tables))
	depth := 0
	for i, v := range p.tables {
		header[i] = v.Label()
		depth = max(depth, len(v.Seats))
	}

	rows = make([][]string, depth)
	for r := range rows {
		row := make([]string, len(p.tables))
		for c, v := range p.tables {
			if r < len(v.Seats) {
				row[c] = v.Seats[r].Occupant
			}
		}
		rows[r] = row
	}

	return header, rows
}

// Map returns the plan as table label -> seat label -> occupant ("" if free).
func (p *Plan) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, len(p.tables))
	for _, v := range p.tables {
		seats := make(map[string]string, len(v.Seats))
		for _, s := range v.Seats {
			seats[s.Label()] = s.Occupant
		}
		out[v.Label()] = seats
	}

	return out
}

// String renders one line per table, e.g.
//
//	Table_1: Seat_1: Alice, Seat_2: Empty
func (p *Plan) String() string {
	var b strings.Builder
	for i, v := range p.tables {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.Label())
		b.WriteString(": ")
		for j, s := range v.Seats {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.Label())
			b.WriteString(": ")
			if s.Occupied() {
				b.WriteString(s.Occupant)
			} else {
				b.WriteString("Empty")
			}
		}
	}

	return b.String()
}
