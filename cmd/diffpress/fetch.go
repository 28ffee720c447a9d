// Copyright 2026 PR Review Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package main provides the diffpress CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pr-review-toolkit/diffpress/pkg/cache"
	"github.com/pr-review-toolkit/diffpress/pkg/compress"
	diffctx "github.com/pr-review-toolkit/diffpress/pkg/context"
	"github.com/pr-review-toolkit/diffpress/pkg/errors"
	"github.com/pr-review-toolkit/diffpress/pkg/observability"
	"github.com/pr-review-toolkit/diffpress/pkg/perf"
	"github.com/pr-review-toolkit/diffpress/pkg/platform"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [pr-url...]",
	Short: "Fetch pull request diffs from GitHub and compress them",
	Long: `Fetch the diff of one or more GitHub pull requests and compress each
into a bounded summary.

With no URL, the pull request is derived from the GitHub Actions
environment (GITHUB_REPOSITORY and GITHUB_REF). A single result goes to
stdout; multiple results are written as files, one per pull request.

Fetched diffs are cached on disk, so repeated runs against the same pull
request stay fast and gentle on the API.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFetch,
}

// fetchFlags holds the flags for the fetch command
type fetchFlags struct {
	raw         bool
	force       bool
	outputDir   string
	noCache     bool
	concurrency int
}

var fetchOpts fetchFlags

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchOpts.raw, "raw", false,
		"emit the fetched diff without compressing it")
	fetchCmd.Flags().BoolVar(&fetchOpts.force, "force", false,
		"process diffs larger than the configured size limit")
	fetchCmd.Flags().StringVarP(&fetchOpts.outputDir, "output-dir", "d", "",
		"write results to this directory (default stdout for a single PR)")
	fetchCmd.Flags().BoolVar(&fetchOpts.noCache, "no-cache", false,
		"skip the diff cache for this run")
	fetchCmd.Flags().IntVar(&fetchOpts.concurrency, "concurrency", 0,
		"parallel fetches in batch mode (default from config)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := diffctx.WithSignal(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	prs, err := resolvePRs(args)
	if err != nil {
		return err
	}

	client, err := newGitHubClient()
	if err != nil {
		return err
	}
	store := newDiffCache()
	keys := cache.NewKeyGenerator()

	var comp *compress.Compressor
	if !fetchOpts.raw {
		if comp, err = newCompressor(); err != nil {
			return err
		}
	}

	concurrency := appCfg.Global.Concurrency
	if fetchOpts.concurrency > 0 {
		concurrency = fetchOpts.concurrency
	}

	results := perf.Map(ctx, prs, func(ctx context.Context, pr platform.PullRequest) (string, error) {
		return fetchOne(ctx, client, store, keys, comp, pr)
	}, concurrency)

	return writeResults(cmd, prs, results)
}

// resolvePRs turns command arguments into pull requests, falling back to
// the CI environment when no argument is given.
func resolvePRs(args []string) ([]platform.PullRequest, error) {
	if len(args) == 0 {
		if platform.IsGitHubActions() {
			pr, err := platform.PRFromEnvironment()
			if err != nil {
				return nil, err
			}
			appLog.Info("resolved pull request from CI environment",
				observability.String("pr", pr.String()))
			return []platform.PullRequest{pr}, nil
		}
		return nil, errors.ValidationError(
			"no pull request URL given and not running in GitHub Actions", nil)
	}

	prs := make([]platform.PullRequest, 0, len(args))
	for _, arg := range args {
		pr, err := platform.ParsePRURL(arg)
		if err != nil {
			return nil, err
		}
		prs = append(prs, pr)
	}
	return prs, nil
}

func newGitHubClient() (*platform.GitHubClient, error) {
	gh := &appCfg.Platform.GitHub
	token := gh.ResolveToken()
	if token == "" {
		appLog.Warn("no token in environment, fetching anonymously",
			observability.String("token_env", gh.TokenEnv))
	}

	client := platform.NewGitHubClient(token)
	client.SetTimeout(gh.TimeoutDuration())
	client.SetLogger(appLog)
	client.SetMetrics(appMetrics)
	if gh.BaseURL != "" {
		if err := client.SetBaseURL(gh.BaseURL); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// newDiffCache returns the disk cache, or nil when caching is off or the
// cache directory cannot be used. A broken cache never blocks a fetch.
func newDiffCache() cache.Cache {
	if fetchOpts.noCache || appCfg.Cache.Disabled {
		return nil
	}
	store, err := cache.NewDiskCache(appCfg.Cache.ResolveDir())
	if err != nil {
		appLog.Warn("disk cache unavailable, continuing without it",
			observability.Err(err))
		return nil
	}
	return store
}

// fetchOne resolves a single pull request's diff through the cache, the
// size guard, and compression.
func fetchOne(ctx context.Context, client *platform.GitHubClient, store cache.Cache,
	keys *cache.KeyGenerator, comp *compress.Compressor, pr platform.PullRequest) (string, error) {

	key := keys.GenerateForPR(pr.URL)
	raw, hit := cachedDiff(ctx, store, key)
	if !hit {
		var err error
		raw, err = client.FetchDiff(ctx, pr)
		if err != nil {
			return "", err
		}
		if store != nil {
			if err := store.Set(ctx, key, []byte(raw), appCfg.Cache.TTLDuration()); err != nil {
				appLog.Warn("failed to cache diff",
					observability.String("pr", pr.String()), observability.Err(err))
			}
		}
	}

	// The size guard runs after caching so a --force retry hits the cache.
	limit := appCfg.Platform.GitHub.MaxDiffChars
	if !fetchOpts.force && limit > 0 && len(raw) > limit {
		return "", errors.DiffTooLargeError(fmt.Sprintf(
			"diff for %s is %d chars, over the %d limit; rerun with --force to process it anyway",
			pr.String(), len(raw), limit), nil)
	}

	if comp == nil {
		return raw, nil
	}
	summary, stats := comp.Compress(raw)
	appLog.Info("diff compressed",
		observability.String("pr", pr.String()),
		observability.Int("input_chars", stats.InputChars),
		observability.Int("output_chars", stats.OutputChars),
		observability.Bool("truncated", stats.Truncated))
	return summary, nil
}

func cachedDiff(ctx context.Context, store cache.Cache, key string) (string, bool) {
	if store == nil {
		return "", false
	}
	value, err := store.Get(ctx, key)
	if err != nil {
		appMetrics.RecordCacheHit(false)
		return "", false
	}
	appMetrics.RecordCacheHit(true)
	appLog.Debug("diff served from cache", observability.String("key", key))
	return string(value), true
}

// writeResults emits fetched diffs: stdout for a single PR, one file per
// PR otherwise. Failures are logged per PR; the first one becomes the
// command's error after every result has been handled.
func writeResults(cmd *cobra.Command, prs []platform.PullRequest, results []perf.Result[string]) error {
	single := len(prs) == 1 && fetchOpts.outputDir == ""

	dir := fetchOpts.outputDir
	if !single {
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var firstErr error
	for i, res := range results {
		pr := prs[i]
		if res.Err != nil {
			appLog.Error("fetch failed",
				observability.String("pr", pr.String()), observability.Err(res.Err))
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}

		if single {
			fmt.Fprint(cmd.OutOrStdout(), res.Value)
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s-%s-%d.diff", pr.Owner, pr.Repo, pr.Number))
		if err := os.WriteFile(path, []byte(res.Value), 0o644); err != nil {
			appLog.Error("failed to write result",
				observability.String("pr", pr.String()), observability.Err(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return firstErr
}
