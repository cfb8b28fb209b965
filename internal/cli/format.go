package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/katalvlaran/seatplan/engine"
	"github.com/katalvlaran/seatplan/roster"
	"github.com/katalvlaran/seatplan/seating"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

func validateFormat(f string) error {
	switch f {
	case formatTable, formatCSV:
		return nil
	}

	return fmt.Errorf("unsupported format %q (want %s or %s)", f, formatTable, formatCSV)
}

// printSection prints a section header
func printSection(w io.Writer, title string) {
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
}

// printSuccess prints a success message with a checkmark
func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

// printFailure prints err with its failure kind, if any.
func printFailure(w io.Writer, path string, err error) {
	label := "error"
	if k := engine.KindOf(err); k != 0 {
		label = k.String()
	}
	_, _ = errorColor.Fprintf(w, "✗ %s [%s]: ", path, label)
	_, _ = fmt.Fprintln(w, err)
}

// printNote prints a dimmed line.
func printNote(w io.Writer, msg string) {
	_, _ = dimColor.Fprintf(w, "  %s\n", msg)
}

// renderPlan writes plan in the requested format.
func renderPlan(w io.Writer, plan *seating.Plan, format string) error {
	if format == formatCSV {
		return roster.WriteCSV(w, plan)
	}

	header, rows := plan.Rows()
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"Seat"}, header...))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, row := range rows {
		table.Append(append([]string{seating.SeatLabel(i + 1)}, row...))
	}
	table.Render()

	return nil
}
