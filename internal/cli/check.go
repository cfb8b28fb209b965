package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Load and validate rosters without seating them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed := 0
			for _, path := range args {
				rec, err := s.load(path)
				if err != nil {
					failed++
					printFailure(errOut, path, err)
					continue
				}
				printSuccess(out, fmt.Sprintf("%s: %d people, %d together, %d apart, capacity %d",
					path, len(rec.People), len(rec.Together), len(rec.Apart), rec.Capacity))
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(args))
			}

			return nil
		},
	}
}
