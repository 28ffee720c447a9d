// Package main provides the diffpress CLI application.
package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/diffpress/pkg/config"
	"github.com/pr-review-toolkit/diffpress/pkg/observability"
	"github.com/pr-review-toolkit/diffpress/pkg/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diffpress",
	Short: "Compress pull request diffs for automated review",
	Long: `diffpress turns large unified diffs into bounded summaries that keep
review-relevant signal: file names, hunk headers, changed lines, and the
declarations introduced by new code.

Feed it a diff on stdin, a file, or a GitHub pull request URL.`,
	Version:      version.FullString(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			appLog.Sync()
		}
	},
}

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	config    string
	logLevel  string
	logFormat string
}

var rootOpts rootFlags

// Application state assembled once per invocation.
var (
	appCfg     *config.Config
	appLog     observability.Logger
	appMetrics *observability.Metrics
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.config, "config", "c", "",
		"path to config file (default: search for .diffpress.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "",
		"log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logFormat, "log-format", "",
		"log format: console, json")
}

// initApp loads configuration and builds the logger and metrics shared by
// all commands. Flags beat environment variables beat the config file.
func initApp(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "version", "help":
		return nil
	}

	var err error
	if rootOpts.config != "" {
		appCfg, err = config.LoadWithOverrides(rootOpts.config)
	} else {
		appCfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level := appCfg.Global.LogLevel
	if rootOpts.logLevel != "" {
		level = rootOpts.logLevel
	}
	format := appCfg.Global.LogFormat
	if rootOpts.logFormat != "" {
		format = rootOpts.logFormat
	}

	logger, err := observability.NewLogger(level, format)
	if err != nil {
		return err
	}
	appLog = logger.With(observability.String("run_id", uuid.NewString()))
	appMetrics = observability.NewMetrics()
	return nil
}
