package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerlilow/mrf/internal/action"
	"github.com/kerlilow/mrf/internal/command"
)

var (
	execYes         bool
	execLeftOnly    bool
	execRightOnly   bool
	execConcurrency int
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] COMMAND ITEM... REPLACER",
	Short: "Run a command for each item and its mapping",
	Long: `Run COMMAND once per matched item with the item and its mapping
appended as arguments (or only one of them with -l or -r). COMMAND is split
on spaces; quote with ' or " to keep spaces in an argument.

Example:
  $ mrf exec -y cp 'photo-1.jpg' '{}{=_}{}'    # runs: cp photo-1.jpg photo_1.jpg`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		argv, err := command.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid command: %w", err)
		}
		job, err := action.Exec(argv, sideOf(execLeftOnly, execRightOnly), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		result, err := resolveArgs(cmd, args[1:], execConcurrency)
		if err != nil {
			return err
		}

		if len(result.Pairs) > 0 && !execYes {
			ok, err := confirm(cmd, "Matched", result, readsStdin(args[1:len(args)-1]))
			if err != nil || !ok {
				return err
			}
		}

		summary, err := action.Run(cmd.Context(), logger, result.Pairs, action.Options{
			Concurrency: workers(execConcurrency),
		}, job)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d commands failed", summary.Failed, len(result.Pairs))
		}
		return checkStrict(result)
	},
}

func init() {
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false, "Do not ask for confirmation")
	execCmd.Flags().BoolVarP(&execLeftOnly, "left-only", "l", false, "Only pass the input string (left-hand side of mapping)")
	execCmd.Flags().BoolVarP(&execRightOnly, "right-only", "r", false, "Only pass the replaced string (right-hand side of mapping)")
	execCmd.Flags().IntVarP(&execConcurrency, "concurrency", "c", 0, "Number of workers (default from config, else number of CPUs)")
	execCmd.MarkFlagsMutuallyExclusive("left-only", "right-only")
}
