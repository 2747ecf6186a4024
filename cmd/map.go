package cmd

import (
	"github.com/spf13/cobra"
)

var (
	mapLeftOnly    bool
	mapRightOnly   bool
	mapConcurrency int
)

var mapCmd = &cobra.Command{
	Use:   "map [flags] ITEM... REPLACER",
	Short: "Print each item with its mapping",
	Long: `Map each item according to the replacer. Pass "-" as the only item to
read items from stdin, one per line.

On a terminal each mapping is printed as "left -> right". Otherwise the
strings are written NUL-terminated.

Examples:
  Replace hyphen with underscore:
    $ mrf map example-001 '{}{=_}{}'
    example-001 -> example_001

  Pipe to cp (consider "mrf exec" instead):
    $ mrf map * '{}{=-}{}' | xargs -0 -n2 cp`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := resolveArgs(cmd, args, mapConcurrency)
		if err != nil {
			return err
		}

		printPairs(cmd.OutOrStdout(), result.Pairs, sideOf(mapLeftOnly, mapRightOnly))
		return checkStrict(result)
	},
}

func init() {
	mapCmd.Flags().BoolVarP(&mapLeftOnly, "left-only", "l", false, "Only output the input string (left-hand side of mapping)")
	mapCmd.Flags().BoolVarP(&mapRightOnly, "right-only", "r", false, "Only output the replaced string (right-hand side of mapping)")
	mapCmd.Flags().IntVarP(&mapConcurrency, "concurrency", "c", 0, "Number of workers (default from config, else number of CPUs)")
	mapCmd.MarkFlagsMutuallyExclusive("left-only", "right-only")
}
