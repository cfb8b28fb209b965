package cli

import (
	"github.com/spf13/pflag"

	"github.com/katalvlaran/seatplan/roster"
)

// settings is the merged env + flag configuration shared by subcommands.
type settings struct {
	cfg   Config
	flags *pflag.FlagSet
}

// apply fills rec's capacity and table count. An explicit flag wins over
// the roster, which wins over the environment.
func (s *settings) apply(rec *roster.Record) {
	if rec.Capacity == 0 || s.flags.Changed("capacity") {
		rec.Capacity = s.cfg.Capacity
	}
	if rec.Tables == 0 || s.flags.Changed("tables") {
		rec.Tables = s.cfg.Tables
	}
}

// load reads, completes and validates the roster at path.
func (s *settings) load(path string) (roster.Record, error) {
	rec, err := roster.LoadFile(path)
	if err != nil {
		return roster.Record{}, err
	}
	s.apply(&rec)
	if err := rec.Validate(); err != nil {
		return roster.Record{}, err
	}

	return rec, nil
}
