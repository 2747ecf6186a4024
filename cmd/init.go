package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kerlilow/mrf/internal/config"
)

// initCmd: mrf init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	// The existing file may be invalid, so it is not loaded.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath
		}
		if err := initConfigurationFile(path); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}

func initConfigurationFile(configurationPath string) error {
	c := config.Default()
	c.Patterns["dash-to-underscore"] = "{}{=_}{}"
	c.Patterns["pad-number"] = "{}{n:03}{}"
	return config.Write(configurationPath, c)
}
