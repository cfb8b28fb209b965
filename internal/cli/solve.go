package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/seatplan/engine"
	"github.com/katalvlaran/seatplan/roster"
	"github.com/katalvlaran/seatplan/seating"
)

// errFilesFailed is returned when at least one roster could not be seated.
var errFilesFailed = errors.New("some rosters failed")

// outcome is the result of one roster.
type outcome struct {
	path    string
	rec     roster.Record
	plan    *seating.Plan
	written string
	err     error
}

func newSolveCmd(s *settings) *cobra.Command {
	var (
		format string
		write  bool
	)
	cmd := &cobra.Command{
		Use:   "solve FILE...",
		Short: "Seat every roster and print the plans",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			if s.cfg.Workers < 1 {
				return fmt.Errorf("workers must be at least 1, got %d", s.cfg.Workers)
			}
			return validateFormat(format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := s.cfg.logger()
			if err != nil {
				return err
			}
			eng := engine.New(s.cfg.engineOptions(log)...)

			results := solveAll(cmd.Context(), s, eng, args, write)

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					printFailure(errOut, r.path, r.err)
					continue
				}
				printSection(out, fmt.Sprintf("%s: %d people at %d tables of %d",
					r.path, len(r.rec.People), r.plan.Len(), r.rec.Capacity))
				if err := renderPlan(out, r.plan, format); err != nil {
					return err
				}
				if r.written != "" {
					printNote(out, "written to "+r.written)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(results))
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or csv")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "also write <file>.plan.csv next to each input")
	cmd.Flags().IntVar(&s.cfg.Workers, "workers", s.cfg.Workers, "rosters solved in parallel")

	return cmd
}

// solveAll seats each roster on its own goroutine, at most cfg.Workers at a
// time. Results keep the order of paths; one failure does not stop the rest.
func solveAll(ctx context.Context, s *settings, eng *engine.Engine, paths []string, write bool) []outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = solveFile(gctx, s, eng, path, write)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func solveFile(ctx context.Context, s *settings, eng *engine.Engine, path string, write bool) outcome {
	o := outcome{path: path}
	rec, err := s.load(path)
	if err != nil {
		o.err = err
		return o
	}
	o.rec = rec

	plan, err := eng.Run(ctx, rec.Request())
	if err != nil {
		o.err = err
		return o
	}
	o.plan = plan

	if write {
		dst := roster.PlanPath(path)
		if err := writePlan(dst, plan); err != nil {
			o.err = err
			return o
		}
		o.written = dst
	}

	return o
}

func writePlan(path string, plan *seating.Plan) (err error) {
	f, err := os.Create(path) //nolint:gosec // path derives from an operator-supplied input
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := roster.WriteCSV(f, plan); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
