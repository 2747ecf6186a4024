package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerlilow/mrf/internal/action"
)

var (
	mvYes         bool
	mvForce       bool
	mvConcurrency int
)

var mvCmd = &cobra.Command{
	Use:   "mv [flags] ITEM... REPLACER",
	Short: "Rename each item to its mapping",
	Long: `Rename each item to its mapping. Items that do not match are left alone.

Example:
  $ mrf mv -y test-001 '{}{=_}{}'    # renames test-001 to test_001`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := resolveArgs(cmd, args, mvConcurrency)
		if err != nil {
			return err
		}

		if overlaps := action.Overlaps(result.Pairs); len(overlaps) > 0 {
			return fmt.Errorf("targets are also items being renamed: %s",
				strings.Join(overlaps, ", "))
		}
		if collisions := action.Collisions(result.Pairs); len(collisions) > 0 && !mvForce {
			return fmt.Errorf("more than one item would be renamed to: %s (use --force to proceed)",
				strings.Join(collisions, ", "))
		}

		if len(result.Pairs) > 0 && !mvYes {
			ok, err := confirm(cmd, "Moving", result, readsStdin(args[:len(args)-1]))
			if err != nil || !ok {
				return err
			}
		}

		summary, err := action.Run(cmd.Context(), logger, result.Pairs, action.Options{
			Concurrency: workers(mvConcurrency),
			Progress:    isTerminal(os.Stderr),
			Description: "moving",
		}, action.Move(mvForce))
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d renames failed", summary.Failed, len(result.Pairs))
		}
		return checkStrict(result)
	},
}

func init() {
	mvCmd.Flags().BoolVarP(&mvYes, "yes", "y", false, "Do not ask for confirmation")
	mvCmd.Flags().BoolVar(&mvForce, "force", false, "Overwrite existing targets")
	mvCmd.Flags().IntVarP(&mvConcurrency, "concurrency", "c", 0, "Number of workers (default from config, else number of CPUs)")
}
