package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by --version and `seatplan version`.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Execute runs the seatplan command tree until done or interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	return newRootCmd(cfg).ExecuteContext(ctx)
}

// newRootCmd builds the command tree; cfg supplies flag defaults.
func newRootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:     "seatplan",
		Version: version,
		Short:   "Seat people at tables under together/apart constraints",
		Long: `seatplan splits a roster into table-sized groups so that every
"together" pair shares a table and no "apart" pair does, then assigns the
groups to randomly numbered tables.

Rosters are YAML (people, together, apart, capacity, tables) or CSV with the
header name,compatible,incompatible. Settings default from SEATPLAN_*
environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	s := &settings{cfg: cfg}
	f := root.PersistentFlags()
	f.IntVar(&s.cfg.Capacity, "capacity", cfg.Capacity, "seats per table when the roster gives none")
	f.IntVar(&s.cfg.Tables, "tables", cfg.Tables, "table count (0 = as few as possible)")
	f.Int64Var(&s.cfg.Seed, "seed", cfg.Seed, "table shuffle seed (0 = random)")
	f.DurationVar(&s.cfg.TimeLimit, "time-limit", cfg.TimeLimit, "search time budget per roster (0 = none)")
	f.IntVar(&s.cfg.MaxNodes, "max-nodes", cfg.MaxNodes, "search node budget per roster (0 = none)")
	f.StringVar(&s.cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	s.flags = f

	root.AddCommand(newSolveCmd(s), newCheckCmd(s), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the seatplan version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
