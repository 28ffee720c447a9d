// Package main provides the diffpress CLI application.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/diffpress/pkg/compress"
	"github.com/pr-review-toolkit/diffpress/pkg/errors"
	"github.com/pr-review-toolkit/diffpress/pkg/output"
)

// compressCmd represents the compress command
var compressCmd = &cobra.Command{
	Use:   "compress [file]",
	Short: "Compress a unified diff read from a file or stdin",
	Long: `Compress a unified diff into a bounded summary.

The diff is read from the given file, or from stdin when no file is named
or the file is "-". The summary is written to stdout unless --output names
a file. With --stats, a summary of what was kept and dropped goes to
stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompress,
}

// compressFlags holds the flags for the compress command
type compressFlags struct {
	maxChars     int
	contextLines int
	maxRunLines  int
	maxHunks     int
	outputPath   string
	stats        bool
	statsFormat  string
}

var compressOpts compressFlags

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().IntVar(&compressOpts.maxChars, "max-chars", 0,
		"output character ceiling (default from config)")
	compressCmd.Flags().IntVar(&compressOpts.contextLines, "context-lines", 0,
		"context lines kept at each end of a collapsed run")
	compressCmd.Flags().IntVar(&compressOpts.maxRunLines, "max-run-lines", 0,
		"longest added/removed run kept whole")
	compressCmd.Flags().IntVar(&compressOpts.maxHunks, "max-hunks", 0,
		"maximum hunks kept per file")
	compressCmd.Flags().StringVarP(&compressOpts.outputPath, "output", "o", "",
		"write the summary to this file instead of stdout")
	compressCmd.Flags().BoolVar(&compressOpts.stats, "stats", false,
		"print compression statistics to stderr")
	compressCmd.Flags().StringVar(&compressOpts.statsFormat, "stats-format", "text",
		"statistics format: text or json")
}

func runCompress(cmd *cobra.Command, args []string) error {
	raw, err := readDiffInput(cmd, args)
	if err != nil {
		return err
	}

	comp, err := newCompressor()
	if err != nil {
		return err
	}

	summary, stats := comp.Compress(raw)

	if compressOpts.outputPath != "" {
		if err := os.WriteFile(compressOpts.outputPath, []byte(summary), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), summary)
	}

	if compressOpts.stats {
		formatter, err := output.NewStatsFormatter(compressOpts.statsFormat)
		if err != nil {
			return err
		}
		rendered, err := formatter.Format(stats)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), rendered)
	}
	return nil
}

// readDiffInput returns the raw diff named by args, or stdin.
func readDiffInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", errors.ValidationError(
				fmt.Sprintf("failed to read diff file %s", args[0]), err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// newCompressor builds the engine from config with flag overrides on top.
func newCompressor() (*compress.Compressor, error) {
	opts := compress.Options{
		MaxChars:         appCfg.Compress.MaxChars,
		ContextLines:     appCfg.Compress.ContextLines,
		MaxRunLines:      appCfg.Compress.MaxRunLines,
		MaxHunksPerFile:  appCfg.Compress.MaxHunksPerFile,
		ExcludedSuffixes: appCfg.Compress.ExcludedSuffixes,
		RescuePatterns:   appCfg.Compress.RescuePatterns,
	}
	if compressOpts.maxChars > 0 {
		opts.MaxChars = compressOpts.maxChars
	}
	if compressOpts.contextLines > 0 {
		opts.ContextLines = compressOpts.contextLines
	}
	if compressOpts.maxRunLines > 0 {
		opts.MaxRunLines = compressOpts.maxRunLines
	}
	if compressOpts.maxHunks > 0 {
		opts.MaxHunksPerFile = compressOpts.maxHunks
	}

	comp, err := compress.New(opts)
	if err != nil {
		return nil, err
	}
	comp.SetLogger(appLog)
	comp.SetMetrics(appMetrics)
	return comp, nil
}
