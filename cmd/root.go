package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kerlilow/mrf/internal/config"
)

// ErrUnmatched is returned under --strict when some items did not match.
var ErrUnmatched = errors.New("some items did not match the replacer")

var (
	cfgFile string
	verbose bool
	strict  bool

	logger *zap.Logger
	conf   config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mrf",
	Short: "mrf - map, rename and run commands on items by replacer patterns",
	Long: `mrf maps items through a replacer such as '{}{n:03}{}'.

Each {} in the replacer is a matcher. Items are split into numbers,
whitespace, punctuation and text, and every matcher takes a run of those
tokens. A matcher may replace its text ({=_}), accept only a number ({n})
and pad the result ({:03}).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return err
		}
		conf, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Execute runs the root command; it is cancelled by SIGINT and SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail when any item does not match the replacer")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(watchCmd)
}
