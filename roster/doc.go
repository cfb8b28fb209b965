// Package roster loads seating input records from YAML or the tabular CSV
// layout and writes finished plans back out as CSV.
//
// CSV input has the header "name,compatible,incompatible". Each row may
// carry a person, a together pair written "A:B" and an apart pair written
// "A/B"; any cell may be blank. Capacity and table count are not part of
// the CSV layout and come from the caller.
package roster
