// Package cli implements the tavola command tree.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tavolahq/tavola/internal/config"
	"github.com/tavolahq/tavola/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// resolved before any subcommand runs
	paths  config.Paths
	appCfg config.Config
	log    *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tavola",
		Short: "Tavola is a phone agent for restaurant reservations and orders",
		Long:  "Tavola answers a restaurant's phone line: it understands what the caller wants, books tables, takes take-away and delivery orders, and hands anything else to a human.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}

			var loadErr error
			appCfg, loadErr = config.Load(paths.Config)

			level := appCfg.Logging.Level
			if logLevel != "" {
				level = logLevel
			}
			var fileErr error
			log, fileErr = logging.NewFromOptions(logging.Options{
				Level: level,
				Style: appCfg.Logging.Style,
				File:  appCfg.Logging.File,
			})
			if fileErr != nil {
				log.Warn().Err(fileErr).Msg("log file unusable, logging to console only")
			}
			if loadErr != nil {
				var cfgErr *config.ConfigError
				if errors.As(loadErr, &cfgErr) {
					log.Warn().Err(loadErr).Msg("config unusable, continuing with defaults")
				} else {
					log.Warn().Err(loadErr).Msg("config could not be read")
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.tavola/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newGatewayCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newHistoryCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
