package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/seatplan/seating"
)

var csvHeader = []string{"name", "compatible", "incompatible"}

const (
	togetherSep = ":"
	apartSep    = "/"
)

// LoadCSV reads the tabular layout. Capacity and Tables are left zero.
func LoadCSV(r io.Reader) (Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Record{}, fmt.Errorf("%w: missing header", ErrInvalidFormat)
	}
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i, want := range csvHeader {
		if got := strings.ToLower(strings.TrimSpace(header[i])); got != want {
			return Record{}, fmt.Errorf("%w: column %d is %q, want %q", ErrInvalidFormat, i+1, header[i], want)
		}
	}

	var rec Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}

		if name := strings.TrimSpace(row[0]); name != "" {
			rec.People = append(rec.People, name)
		}
		if p, ok, err := splitPair(row[1], togetherSep); err != nil {
			return Record{}, fmt.Errorf("%w: line %d: %w", ErrInvalidFormat, line, err)
		} else if ok {
			rec.Together = append(rec.Together, p)
		}
		if p, ok, err := splitPair(row[2], apartSep); err != nil {
			return Record{}, fmt.Errorf("%w: line %d: %w", ErrInvalidFormat, line, err)
		} else if ok {
			rec.Apart = append(rec.Apart, p)
		}
	}

	return rec, nil
}

// splitPair parses "A<sep>B". A blank cell yields ok == false.
func splitPair(cell, sep string) ([2]string, bool, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return [2]string{}, false, nil
	}
	parts := strings.Split(cell, sep)
	if len(parts) != 2 {
		return [2]string{}, false, fmt.Errorf("pair %q must be two names separated by %q", cell, sep)
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return [2]string{}, false, fmt.Errorf("pair %q has a blank name", cell)
	}

	return [2]string{a, b}, true, nil
}

// WriteCSV writes plan with one column per table and one row per seat
// index; free seats are empty cells.
func WriteCSV(w io.Writer, plan *seating.Plan) error {
	header, rows := plan.Rows()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}

	return cw.Error()
}
