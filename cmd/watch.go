package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kerlilow/mrf/internal/action"
	"github.com/kerlilow/mrf/internal/resolve"
	"github.com/kerlilow/mrf/internal/watch"
	"github.com/kerlilow/mrf/replacer"
)

var (
	watchExisting    bool
	watchForce       bool
	watchConcurrency int
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] DIR REPLACER",
	Short: "Rename files as they are created in a directory",
	Long: `Watch DIR and rename every file created in it by applying the replacer
to its base name. Runs until interrupted.

Example:
  $ mrf watch ~/Downloads '{}{= }{}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := homedir.Expand(args[0])
		if err != nil {
			return err
		}
		r, err := compileReplacer(args[1])
		if err != nil {
			return err
		}

		if watchExisting {
			if err := renameExisting(cmd, dir, r); err != nil {
				return err
			}
		}

		w, err := watch.New(dir, r, logger, watchForce)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		w.OnRename = func(p resolve.Pair) {
			fmt.Fprintf(out, "%s -> %s\n", p.Left, p.Right)
		}

		logger.Info("Watching",
			zap.String("dir", dir),
			zap.String("replacer", r.String()),
			zap.Int("matchers", r.NumMatchers()))
		return w.Run(cmd.Context())
	},
}

// renameExisting applies r to the entries already in dir.
func renameExisting(cmd *cobra.Command, dir string, r *replacer.Replacer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	result, err := resolve.Resolve(cmd.Context(), logger, r, names, workers(watchConcurrency))
	if err != nil {
		return err
	}
	pairs := make([]resolve.Pair, 0, len(result.Pairs))
	for _, p := range result.Pairs {
		pairs = append(pairs, resolve.Pair{
			Left:  filepath.Join(dir, p.Left),
			Right: filepath.Join(dir, p.Right),
			Match: p.Match,
		})
	}

	if overlaps := action.Overlaps(pairs); len(overlaps) > 0 {
		return fmt.Errorf("targets are also files being renamed: %s", strings.Join(overlaps, ", "))
	}

	summary, err := action.Run(cmd.Context(), logger, pairs, action.Options{
		Concurrency: workers(watchConcurrency),
	}, action.Move(watchForce))
	if err != nil {
		return err
	}
	logger.Info("Renamed existing files",
		zap.Int("done", summary.Done),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return nil
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Also rename files already in DIR")
	watchCmd.Flags().BoolVar(&watchForce, "force", false, "Overwrite existing targets")
	watchCmd.Flags().IntVarP(&watchConcurrency, "concurrency", "c", 0, "Number of workers for --existing (default from config, else number of CPUs)")
}
